package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Ground query backends.
const (
	ProbeCP     = "cp"
	ProbeResolv = "resolv"
)

// Options are the host settings read from the environment.
type Options struct {
	PrefabDir   string `env:"CHARCORE_PREFAB_DIR" envDefault:"prefabs"`
	Character   string `env:"CHARCORE_CHARACTER" envDefault:"character.yaml"`
	Scenario    string `env:"CHARCORE_SCENARIO" envDefault:"walk_and_jump"`
	Watch       bool   `env:"CHARCORE_WATCH" envDefault:"false"`
	Debug       bool   `env:"CHARCORE_DEBUG" envDefault:"false"`
	GroundProbe string `env:"CHARCORE_GROUND_PROBE" envDefault:"cp"`
	Ticks       int    `env:"CHARCORE_TICKS" envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadOptions parses Options and checks enumerated values.
func LoadOptions() (Options, error) {
	var opts Options
	if err := ParseEnv(&opts); err != nil {
		return Options{}, err
	}
	opts.GroundProbe = strings.ToLower(strings.TrimSpace(opts.GroundProbe))
	switch opts.GroundProbe {
	case ProbeCP, ProbeResolv:
	default:
		return Options{}, fmt.Errorf("config: CHARCORE_GROUND_PROBE must be %q or %q, got %q", ProbeCP, ProbeResolv, opts.GroundProbe)
	}
	if opts.Ticks < 0 {
		return Options{}, fmt.Errorf("config: CHARCORE_TICKS must be >= 0, got %d", opts.Ticks)
	}
	return opts, nil
}
