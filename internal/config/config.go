// Package config loads the normalizer's tunables from YAML, following
// the same os.ReadFile + yaml.Unmarshal + required-field validation
// idiom as the teacher's eval_harness.LoadSpec.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/latticelang/lattice/internal/ir"
)

// NormalizerConfig tunes the rewriter and serializer (spec §4.3, §4.8).
type NormalizerConfig struct {
	// ReductionBudget bounds rewrite steps per top-level binding.
	// Omitted in the YAML file means "use the default"; Load rejects
	// zero or a negative value.
	ReductionBudget int `yaml:"reduction_budget"`

	// MaxSerializeDepth guards Serialize/SerializePattern against
	// pathologically deep terms; zero means "no limit".
	MaxSerializeDepth int `yaml:"max_serialize_depth"`

	// EnableDecisionTree turns on the optional dtree fast path for
	// Match dispatch (internal/ir/dtree.go). Off by default, matching
	// the teacher's own posture for its decision-tree matcher.
	EnableDecisionTree bool `yaml:"enable_decision_tree"`
}

// DefaultConfig returns the normalizer's out-of-the-box tunables.
func DefaultConfig() NormalizerConfig {
	return NormalizerConfig{
		ReductionBudget:    ir.DefaultReductionBudget,
		MaxSerializeDepth:  0,
		EnableDecisionTree: false,
	}
}

// Load reads a NormalizerConfig from a YAML file at path, applying
// DefaultConfig's values for any field the file omits.
func Load(path string) (NormalizerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NormalizerConfig{}, fmt.Errorf("config: failed to read file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return NormalizerConfig{}, fmt.Errorf("config: failed to parse YAML: %w", err)
	}

	if cfg.ReductionBudget <= 0 {
		return NormalizerConfig{}, fmt.Errorf("config: reduction_budget must be positive, got %d", cfg.ReductionBudget)
	}
	return cfg, nil
}
