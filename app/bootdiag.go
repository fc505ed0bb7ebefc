//go:build !(tinygo && bootdebug)

package app

import "usdr/hal"

func bootDiagStart(hal.HAL, *bootTrace) {}

func bootScreen(_ hal.HAL, bt *bootTrace, step string) { bt.step(step) }
