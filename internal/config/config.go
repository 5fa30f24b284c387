// Package config loads the YAML document describing a generation run:
// which library roots to load into a Collection, and which class to
// flatten and generate. Grounded directly on the teacher's
// internal/eval_harness.LoadSpec: read the whole file, yaml.Unmarshal into
// a plain struct, then validate required fields by hand with wrapped
// fmt.Errorf rather than a validation-tag library.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is a single generation run's configuration document. LibraryPaths
// names the Collection roots to load (in this repo's example-backed CLI,
// these are names from cmd/modc's known example set — see "modc run" and
// SPEC_FULL.md's CLI scope decision; a real .mo-file loader would instead
// treat these as filesystem roots); TargetClass is the dotted class name
// to flatten and generate.
type Spec struct {
	LibraryPaths []string `yaml:"library_paths"`
	TargetClass  string   `yaml:"target_class"`
}

// Load reads and validates a Spec from path.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(spec.LibraryPaths) == 0 {
		return nil, fmt.Errorf("config missing required field: library_paths")
	}
	if spec.TargetClass == "" {
		return nil, fmt.Errorf("config missing required field: target_class")
	}

	return &spec, nil
}
