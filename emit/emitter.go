// Package emit lowers ordered IR entries into validator-library source code.
// Each supported library has its own Emitter implementation registered in a
// lookup map; the implementations share no emission logic because the target
// syntaxes diverge too much (builder-style Zod, pipe-based Valibot, string-DSL
// ArkType, combinator-style Effect Schema).
package emit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/schemac/schemac/ir"
	"github.com/schemac/schemac/naming"
)

// Library identifies a target validator library.
type Library string

const (
	LibraryZod     Library = "zod"
	LibraryValibot Library = "valibot"
	LibraryArkType Library = "arktype"
	LibraryEffect  Library = "effect"
)

// Options tunes emission for one module.
type Options struct {
	// FormContext marks the consumer as a form-validation caller that relies on
	// the Standard Schema contract. Only the Effect emitter changes behavior:
	// its native schema object does not satisfy that contract, so exported
	// schemas get wrapped with the Standard Schema adapter.
	FormContext bool
}

// Result is one emitted module plus accumulated non-fatal warnings.
type Result struct {
	Content  string
	Warnings []string
}

// Emitter converts ordered named IR entries into one library's source code.
type Emitter interface {
	Library() Library
	// Emit iterates schemas in the order given (the caller sorts; the emitter
	// must not) and produces one exported schema constant plus one exported
	// type alias per entry.
	Emit(schemas []ir.Named, opts Options) Result
	// ImportStatement returns the library's import line.
	ImportStatement() string
	// TypeInference returns the exported type-alias line inferring typeName
	// from the schema variable.
	TypeInference(schemaVar, typeName string) string
}

var registry = map[Library]Emitter{
	LibraryZod:     &zodEmitter{},
	LibraryValibot: &valibotEmitter{},
	LibraryArkType: &arkEmitter{},
	LibraryEffect:  &effectEmitter{},
}

// Lookup resolves a validator-library identifier to its emitter. Unknown
// identifiers produce an error enumerating the supported set.
func Lookup(name string) (Emitter, error) {
	if e, ok := registry[Library(name)]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("unknown validator library %q (supported: %s)", name, strings.Join(Libraries(), ", "))
}

// Libraries returns the supported library identifiers, sorted.
func Libraries() []string {
	out := make([]string, 0, len(registry))
	for l := range registry {
		out = append(out, string(l))
	}
	sort.Strings(out)
	return out
}

// moduleHeader precedes every emitted module.
const moduleHeader = "/* eslint-disable */\n// Code generated by schemac. DO NOT EDIT.\n"

// sink accumulates warnings during one Emit call.
type sink struct{ ws []string }

func (s *sink) warnf(f string, a ...any) { s.ws = append(s.ws, fmt.Sprintf(f, a...)) }

// renderModule assembles one module: header, import, then per entry an
// optional doc comment, the exported schema constant, and the type alias.
// It also surfaces forward references: a ref to a name not yet declared can
// only happen under a true dependency cycle (the caller sorts acyclic inputs),
// and the generated code would hit the target language's use-before-declaration
// semantics, so it is reported rather than silently emitted.
func renderModule(e Emitter, schemas []ir.Named, expr func(n ir.Named, s *sink) string) Result {
	snk := &sink{}
	declared := make(map[string]struct{}, len(schemas))

	var b strings.Builder
	b.WriteString(moduleHeader)
	b.WriteString(e.ImportStatement())
	b.WriteString("\n")

	for _, n := range schemas {
		for _, dep := range sortedRefs(n.Schema) {
			if _, ok := declared[dep]; !ok {
				if _, inModule := find(schemas, dep); inModule {
					snk.warnf("%s references %s before its declaration (dependency cycle); the generated module may not load", n.Name, dep)
				}
			}
		}
		b.WriteString("\n")
		if doc := n.Schema.Doc(); doc != "" {
			fmt.Fprintf(&b, "/** %s */\n", sanitizeDoc(doc))
		}
		fmt.Fprintf(&b, "export const %s = %s;\n", naming.ToSchemaName(n.Name), expr(n, snk))
		b.WriteString(e.TypeInference(naming.ToSchemaName(n.Name), n.Name))
		b.WriteString("\n")
		declared[n.Name] = struct{}{}
	}
	return Result{Content: b.String(), Warnings: snk.ws}
}

func find(schemas []ir.Named, name string) (ir.Named, bool) {
	for _, s := range schemas {
		if s.Name == name {
			return s, true
		}
	}
	return ir.Named{}, false
}

// sortedRefs returns every ref name reachable in s, self-references included,
// in lexicographic order for deterministic warning output.
func sortedRefs(s ir.Schema) []string {
	deps := ir.Dependencies(s)
	out := make([]string, 0, len(deps))
	for d := range deps {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// sanitizeDoc keeps a description safe inside a single-line doc comment.
func sanitizeDoc(s string) string {
	s = strings.ReplaceAll(s, "*/", "*\\/")
	return strings.Join(strings.Fields(s), " ")
}

// formatLiteral renders a literal value as source text.
func formatLiteral(v any) string {
	switch t := v.(type) {
	case string:
		return naming.QuoteString(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatFloat renders a numeric bound without a trailing ".0".
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// splitNullish strips null/undefined members off a union so property emission
// can express them with the target library's optionality idiom instead of a
// literal union. Returns the remaining core schema and which members were
// stripped. Unions consisting solely of null/undefined are left untouched.
func splitNullish(s ir.Schema) (core ir.Schema, hasNull, hasUndefined bool) {
	u, ok := s.(*ir.Union)
	if !ok {
		return s, false, false
	}
	rest := make([]ir.Schema, 0, len(u.Members))
	for _, m := range u.Members {
		switch {
		case ir.IsNull(m):
			hasNull = true
		case ir.IsUndefined(m):
			hasUndefined = true
		default:
			rest = append(rest, m)
		}
	}
	if len(rest) == 0 {
		return s, false, false
	}
	if len(rest) == 1 {
		return rest[0], hasNull, hasUndefined
	}
	return &ir.Union{Members: rest, Description: u.Description}, hasNull, hasUndefined
}

// enumIsStrings reports whether every enum member is a string.
func enumIsStrings(e *ir.Enum) bool {
	for _, v := range e.Values {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return true
}
