//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"usdr/app"
	"usdr/hal"
	"usdr/hmi/display"
	"usdr/hmi/radio"
	"usdr/internal/buildinfo"
	"usdr/internal/dspsim"
	"usdr/internal/metrics"
	"usdr/kernel"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

type hostOptions struct {
	headless    bool
	hz          int
	ticks       uint64
	configPath  string
	flashPath   string
	metricsAddr string
	pins        map[string]string
	saveOnExit  bool
	noTouch     bool
	seed        uint64
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o hostOptions
	cmd := &cobra.Command{
		Use:          "usdr",
		Short:        "uSDR operator interface on a desktop, driven by a simulated receiver",
		Version:      buildinfo.String(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), o)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&o.headless, "headless", false, "run without a window")
	f.IntVar(&o.hz, "hz", 100, "step rate in headless mode")
	f.Uint64Var(&o.ticks, "ticks", 0, "stop after N steps in headless mode (0 = run until interrupted)")
	f.StringVarP(&o.configPath, "config", "c", "", "YAML config file")
	f.StringVar(&o.flashPath, "flash", "", "flash image backing the band store (default usdr.flash)")
	f.StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9100")
	f.StringToStringVar(&o.pins, "pins", nil, "bind controls to real GPIO lines, e.g. GP2=GPIO17,GP3=GPIO27")
	f.BoolVar(&o.saveOnExit, "save-on-exit", false, "write the band table to flash on exit")
	f.BoolVar(&o.noTouch, "no-touch", false, "run without the touch panel")
	f.Uint64Var(&o.seed, "seed", 0, "noise seed for the simulated receiver (0 = time based)")
	return cmd
}

func run(ctx context.Context, o hostOptions) error {
	cfg := app.DefaultConfig()
	if o.configPath != "" {
		c, err := app.LoadConfig(o.configPath)
		if err != nil {
			return err
		}
		cfg = c
	}

	host := hal.HostConfig{FlashPath: o.flashPath, NoTouch: o.noTouch}
	if len(o.pins) > 0 {
		g, err := hal.OpenPeriphGPIO(o.pins)
		if err != nil {
			return err
		}
		host.GPIO = g
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	if o.metricsAddr != "" {
		srv := &http.Server{
			Addr:              o.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintln(os.Stderr, "metrics:", err)
			}
		}()
		defer srv.Close()
	}

	seed := o.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	var tel kernel.Latch[display.Telemetry]
	sim := dspsim.New(&tel, dspsim.DefaultStations(), seed)

	var a *app.App
	host.OnExit = func() {
		if a == nil {
			return
		}
		a.Close()
		if o.saveOnExit {
			if err := a.Save(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
	newApp := func(h hal.HAL) (func() error, error) {
		var err error
		a, err = app.New(h, cfg, app.Options{
			Rig:       radio.Rig{Synth: sim, Relay: sim, DSP: sim},
			Telemetry: &tel,
			Producer:  sim,
			Metrics:   m,
		})
		if err != nil {
			return nil, err
		}
		return a.Step, nil
	}

	if !o.headless {
		return hal.RunWindow(newApp, host)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	err := hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{Host: host, Hz: o.hz, Ticks: o.ticks})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
