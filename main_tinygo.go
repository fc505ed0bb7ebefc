//go:build tinygo

package main

import (
	"usdr/app"
	"usdr/hal"
)

func main() {
	app.Run(hal.New(), app.DefaultConfig())
}
