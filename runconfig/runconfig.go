// Package runconfig loads and validates the optimizer's run
// configuration: population size, generation budget, seed, SBX/mutation
// distribution indices, and worker count — the one ambient configuration
// surface the core itself owns (§5, §4.10).
package runconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/wokhouse/viberesp-sub001/optimize"
)

// RunConfig is the YAML-loadable optimizer configuration. Zero-valued
// CrossoverEta, MutationEta and Workers fall back to optimize.DefaultConfig's
// values in ToOptimizeConfig; PopulationSize and Generations must be set.
type RunConfig struct {
	PopulationSize int     `yaml:"population_size"`
	Generations    int     `yaml:"generations"`
	SeedHi         uint64  `yaml:"seed_hi"`
	SeedLo         uint64  `yaml:"seed_lo"`
	CrossoverEta   float64 `yaml:"crossover_eta"`
	MutationEta    float64 `yaml:"mutation_eta"`
	Workers        int     `yaml:"workers"`
}

// Parse decodes a YAML document into a RunConfig and validates it.
func Parse(data []byte) (RunConfig, error) {
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("runconfig: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// Validate checks RunConfig's invariants, allowing the distribution
// indices and worker count to be left at zero (defaulted in
// ToOptimizeConfig) but requiring a population size and generation budget
// to be specified explicitly — silently defaulting those invites running
// a much smaller search than the user intended.
func (c RunConfig) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("runconfig: population_size must be at least 2, got %d", c.PopulationSize)
	}
	if c.Generations < 1 {
		return fmt.Errorf("runconfig: generations must be at least 1, got %d", c.Generations)
	}
	if c.CrossoverEta < 0 {
		return fmt.Errorf("runconfig: crossover_eta must be non-negative, got %g", c.CrossoverEta)
	}
	if c.MutationEta < 0 {
		return fmt.Errorf("runconfig: mutation_eta must be non-negative, got %g", c.MutationEta)
	}
	if c.Workers < 0 {
		return fmt.Errorf("runconfig: workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

// ToOptimizeConfig converts a validated RunConfig into an optimize.Config,
// defaulting CrossoverEta/MutationEta/Workers to optimize.DefaultConfig's
// values when left at their YAML zero value.
func (c RunConfig) ToOptimizeConfig() optimize.Config {
	defaults := optimize.DefaultConfig()
	out := optimize.Config{
		PopulationSize: c.PopulationSize,
		Generations:    c.Generations,
		SeedHi:         c.SeedHi,
		SeedLo:         c.SeedLo,
		CrossoverEta:   c.CrossoverEta,
		MutationEta:    c.MutationEta,
		Workers:        c.Workers,
	}
	if out.CrossoverEta == 0 {
		out.CrossoverEta = defaults.CrossoverEta
	}
	if out.MutationEta == 0 {
		out.MutationEta = defaults.MutationEta
	}
	if out.Workers == 0 {
		out.Workers = defaults.Workers
	}
	return out
}
