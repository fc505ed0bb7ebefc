package app

import (
	"fmt"
	"os"

	"usdr/hmi/input"
	"usdr/hmi/menu"
	"usdr/hmi/radio"
	"usdr/hmi/sched"

	"gopkg.in/yaml.v3"
)

// Config tunes the operator interface. The zero value is usable; missing
// fields take the defaults below.
type Config struct {
	// LoopMS is the main loop period.
	LoopMS int `yaml:"loop_ms"`
	// StartBand is the band index selected at power-up.
	StartBand *int `yaml:"start_band"`
	// Palette is the initial waterfall colormap: "jet" or "fire".
	Palette string `yaml:"palette"`
	// Touch enables the touch panel and its help box. Nil means on when
	// the board has a panel.
	Touch *bool `yaml:"touch"`
	// IntroSeconds keeps the intro screen up with a countdown.
	IntroSeconds int `yaml:"intro_seconds"`
	// Mailbox is the control event queue depth.
	Mailbox int `yaml:"mailbox"`

	Pins      input.Pins      `yaml:"pins"`
	Waterfall WaterfallConfig `yaml:"waterfall"`

	// Bands replaces the factory band table. A table saved in flash still
	// takes precedence.
	Bands []radio.Profile `yaml:"bands"`
}

// WaterfallConfig holds waterfall overrides.
type WaterfallConfig struct {
	// Scale is the FFT gain applied at start-up instead of the band's
	// default; 0 keeps the default.
	Scale int `yaml:"scale"`
}

// DefaultConfig returns the board defaults.
func DefaultConfig() Config {
	start := radio.StartBand
	return Config{
		LoopMS:       sched.DefaultInterval,
		StartBand:    &start,
		Palette:      "jet",
		IntroSeconds: 3,
		Mailbox:      32,
		Pins:         input.DefaultPins(),
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be clamped silently.
func (c Config) Validate() error {
	if c.LoopMS < 0 {
		return fmt.Errorf("loop_ms %d is negative", c.LoopMS)
	}
	if _, err := c.palette(); err != nil {
		return err
	}
	for _, p := range c.Bands {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) palette() (menu.Palette, error) {
	switch c.Palette {
	case "", "jet":
		return menu.PaletteJet, nil
	case "fire":
		return menu.PaletteFire, nil
	}
	return 0, fmt.Errorf("unknown palette %q", c.Palette)
}

func (c Config) startBand() int {
	if c.StartBand == nil {
		return radio.StartBand
	}
	return *c.StartBand
}

func (c Config) interval() uint32 {
	if c.LoopMS <= 0 {
		return sched.DefaultInterval
	}
	return uint32(c.LoopMS)
}
