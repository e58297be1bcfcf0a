// Package harness runs compiler conformance scenarios: each scenario names a
// query file and a compilation mode, and its compiled plan is compared
// against a golden rendering.
package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Query is the path to the structured query JSON file.
	// Relative paths resolve against the scenario file location.
	Query string `yaml:"query"`

	// Mode selects the compilation strategy: "plain" or "semantic-rewrite".
	Mode string `yaml:"mode"`

	// Catalog is the path to the label catalog CUE file.
	// Required when Mode is "semantic-rewrite".
	Catalog string `yaml:"catalog,omitempty"`
}

// Mode constants.
const (
	ModePlain           = "plain"
	ModeSemanticRewrite = "semantic-rewrite"
)

// LoadScenario reads and parses a scenario YAML file. Relative query and
// catalog paths are resolved against the scenario file's directory.
// Returns an error if the file is malformed, contains unknown fields
// (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "querys:" vs "query:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	if scenario.Query != "" && !filepath.IsAbs(scenario.Query) {
		scenario.Query = filepath.Join(base, scenario.Query)
	}
	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) {
		scenario.Catalog = filepath.Join(base, scenario.Catalog)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Query == "" {
		return fmt.Errorf("query is required")
	}
	if _, err := os.Stat(s.Query); os.IsNotExist(err) {
		return fmt.Errorf("query file not found: %s", s.Query)
	}

	switch s.Mode {
	case ModePlain:
		if s.Catalog != "" {
			return fmt.Errorf("plain mode must not carry a catalog")
		}
	case ModeSemanticRewrite:
		if s.Catalog == "" {
			return fmt.Errorf("semantic-rewrite mode requires a catalog")
		}
		if _, err := os.Stat(s.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("catalog file not found: %s", s.Catalog)
		}
	default:
		return fmt.Errorf("unknown mode %q", s.Mode)
	}

	return nil
}
