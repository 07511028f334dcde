package ir

import "fmt"

// Category classifies what a named entry was derived from. It is advisory
// metadata for downstream generators; emitters ignore it.
type Category string

const (
	CategoryNone      Category = ""
	CategoryEnum      Category = "enum"
	CategoryInput     Category = "input"
	CategoryResponse  Category = "response"
	CategoryParams    Category = "params"
	CategoryFragment  Category = "fragment"
	CategoryComponent Category = "component"
	CategoryVariables Category = "variables"
)

// Named is one top-level, independently referenceable IR definition.
// Immutable once constructed; the producing parser is the sole writer.
type Named struct {
	// Name is a PascalCase identifier, unique within one Result.
	Name   string
	Schema Schema
	// Dependencies holds the names of other Named entries this schema refers
	// to, self-references excluded.
	Dependencies map[string]struct{}
	Category     Category
}

// NewNamed builds a Named entry, deriving Dependencies from a structural walk
// of the schema. A self-referencing ref is permitted and not recorded as a
// dependency.
func NewNamed(name string, s Schema, cat Category) Named {
	deps := Dependencies(s)
	delete(deps, name)
	return Named{Name: name, Schema: s, Dependencies: deps, Category: cat}
}

// Result is a parser's complete, final output: named entries in topological
// order plus accumulated non-fatal warnings.
type Result struct {
	Schemas  []Named
	Warnings []string
}

// Diag carries non-fatal warnings produced during IR construction.
type Diag struct{ ws []string }

func (d *Diag) Warnings() []string { return append([]string(nil), d.ws...) }

// Warnf records one warning.
func (d *Diag) Warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
