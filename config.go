package schemac

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/schemac/schemac/emit"
)

// SourceKind identifies the spec format of one source.
type SourceKind string

const (
	SourceGraphQL SourceKind = "graphql"
	SourceOpenAPI SourceKind = "openapi"
)

// Source is the per-source configuration: where the spec lives, which
// validator library to target, and the custom scalar/format overrides.
type Source struct {
	Name      string     `json:"name" yaml:"name"`
	Kind      SourceKind `json:"kind" yaml:"kind"`
	Validator string     `json:"validator" yaml:"validator"`

	// Schema and Documents locate a GraphQL SDL file and its operation
	// documents; Spec locates an OpenAPI document. Loaded by the CLI, not by
	// the core.
	Schema    string   `json:"schema,omitempty" yaml:"schema,omitempty"`
	Documents []string `json:"documents,omitempty" yaml:"documents,omitempty"`
	Spec      string   `json:"spec,omitempty" yaml:"spec,omitempty"`

	// Scalars maps scalar/format names to validator-specific expressions,
	// emitted verbatim into the generated module.
	Scalars map[string]string `json:"scalars,omitempty" yaml:"scalars,omitempty"`

	// Include/Exclude are doublestar globs over OpenAPI path templates.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// Forms marks the output as consumed by a form-validation caller, which
	// changes emission for libraries that need a Standard Schema adapter.
	Forms bool `json:"forms,omitempty" yaml:"forms,omitempty"`

	// Output is the destination file for the emitted module.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// Config is the multi-source generation configuration.
type Config struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

// LoadConfig reads and validates a configuration file; YAML or JSON is chosen
// by extension.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	} else {
		if err := json.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration before any generation begins. Scalar
// overrides are checked against the selected validator here so that a
// misconfigured override fails fast with a corrective message instead of
// producing a broken module.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("config: no sources defined")
	}
	seen := map[string]bool{}
	for i := range c.Sources {
		if err := c.Sources[i].validate(); err != nil {
			return err
		}
		if seen[c.Sources[i].Name] {
			return fmt.Errorf("config: duplicate source name %q", c.Sources[i].Name)
		}
		seen[c.Sources[i].Name] = true
	}
	return nil
}

func (s *Source) validate() error {
	if s.Name == "" {
		return fmt.Errorf("config: source without a name")
	}
	switch s.Kind {
	case SourceGraphQL, SourceOpenAPI:
	default:
		return fmt.Errorf("config: source %s: unknown kind %q (supported: %s, %s)", s.Name, s.Kind, SourceGraphQL, SourceOpenAPI)
	}
	if _, err := emit.Lookup(s.Validator); err != nil {
		return fmt.Errorf("config: source %s: %w", s.Name, err)
	}
	for name, src := range s.Scalars {
		if err := emit.CheckRawExpression(emit.Library(s.Validator), name, src); err != nil {
			return fmt.Errorf("config: source %s: %w", s.Name, err)
		}
	}
	return nil
}
