// Package config loads the run-level "Configuration interface" spec.md §6
// describes (semantics, max_steps, seed). Parsing the scene/rule
// description itself stays a collaborator's concern (spec.md §1); only
// these three run parameters are this module's to own.
package config

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jtomasevic/psystem/psystem"
)

// RunConfig is the parsed configuration interface of spec.md §6.
type RunConfig struct {
	Semantics string `yaml:"semantics"` // "MIN_PARALLEL" or "MAX_PARALLEL"
	MaxSteps  *int   `yaml:"max_steps"` // nil means unbounded
	Seed      *int64 `yaml:"seed"`      // nil means an OS-entropy seed
}

// Load reads and validates a RunConfig from a YAML file at path.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.Semantics == "" {
		cfg.Semantics = "MIN_PARALLEL"
	}
	if _, err := cfg.ParseSemantics(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// ParseSemantics resolves the Semantics string into psystem.Semantics.
func (c RunConfig) ParseSemantics() (psystem.Semantics, error) {
	switch c.Semantics {
	case "", "MIN_PARALLEL":
		return psystem.MinParallel, nil
	case "MAX_PARALLEL":
		return psystem.MaxParallel, nil
	default:
		return 0, fmt.Errorf("config: unknown semantics %q", c.Semantics)
	}
}

// Seeder returns a deterministic RNG when Seed is set, or one seeded from
// an OS-entropy source otherwise (spec.md §6: "if set, the PRNG is seeded
// with it; otherwise an OS-entropy seed").
func (c RunConfig) Seeder() psystem.RNG {
	if c.Seed != nil {
		return psystem.NewRNG(*c.Seed)
	}
	return psystem.NewRNG(entropySeed())
}

func entropySeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is not something this core can recover
		// from usefully; fall back to a fixed seed rather than panic.
		return 0
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
