package emit

import (
	"fmt"
	"strings"

	"github.com/schemac/schemac/ir"
	"github.com/schemac/schemac/naming"
)

// effectEmitter targets Effect Schema. Unlike the other targets, Effect's
// native schema object does not satisfy the Standard Schema contract, so in a
// form-validation context every exported schema is wrapped with the adapter.
type effectEmitter struct{}

func (e *effectEmitter) Library() Library { return LibraryEffect }

func (e *effectEmitter) ImportStatement() string { return `import { Schema } from "effect";` }

func (e *effectEmitter) TypeInference(schemaVar, typeName string) string {
	return fmt.Sprintf("export type %s = typeof %s.Type;", typeName, schemaVar)
}

func (e *effectEmitter) Emit(schemas []ir.Named, opts Options) Result {
	return renderModule(e, schemas, func(n ir.Named, s *sink) string {
		expr := effectExpr(n.Schema, s)
		if opts.FormContext {
			expr = fmt.Sprintf("Schema.standardSchemaV1(%s)", expr)
		}
		return expr
	})
}

func effectExpr(s ir.Schema, snk *sink) string {
	switch t := s.(type) {
	case *ir.String:
		return effectString(t)
	case *ir.Number:
		var steps []string
		if t.Integer {
			steps = append(steps, "Schema.int()")
		}
		if t.Min != nil {
			steps = append(steps, fmt.Sprintf("Schema.greaterThanOrEqualTo(%s)", formatFloat(*t.Min)))
		}
		if t.Max != nil {
			steps = append(steps, fmt.Sprintf("Schema.lessThanOrEqualTo(%s)", formatFloat(*t.Max)))
		}
		return effectPipe("Schema.Number", steps)
	case *ir.Boolean:
		return "Schema.Boolean"
	case *ir.BigInt:
		return "Schema.BigIntFromSelf"
	case *ir.Null:
		return "Schema.Null"
	case *ir.Undefined:
		return "Schema.Undefined"
	case *ir.Unknown:
		return "Schema.Unknown"
	case *ir.Never:
		return "Schema.Never"
	case *ir.Date:
		return "Schema.DateFromSelf"
	case *ir.Object:
		return effectObject(t, snk)
	case *ir.Array:
		return fmt.Sprintf("Schema.Array(%s)", effectExpr(t.Items, snk))
	case *ir.Tuple:
		items := make([]string, 0, len(t.Items))
		for _, it := range t.Items {
			items = append(items, effectExpr(it, snk))
		}
		return fmt.Sprintf("Schema.Tuple(%s)", strings.Join(items, ", "))
	case *ir.Record:
		return fmt.Sprintf("Schema.Record({ key: %s, value: %s })", effectExpr(t.Key, snk), effectExpr(t.Value, snk))
	case *ir.Enum:
		vals := make([]string, 0, len(t.Values))
		for _, v := range t.Values {
			vals = append(vals, formatLiteral(v))
		}
		return fmt.Sprintf("Schema.Literal(%s)", strings.Join(vals, ", "))
	case *ir.Literal:
		return fmt.Sprintf("Schema.Literal(%s)", formatLiteral(t.Value))
	case *ir.Union:
		members := make([]string, 0, len(t.Members))
		for _, m := range t.Members {
			members = append(members, effectExpr(m, snk))
		}
		return fmt.Sprintf("Schema.Union(%s)", strings.Join(members, ", "))
	case *ir.Intersection:
		return effectIntersection(t, snk)
	case *ir.Ref:
		return naming.ToSchemaName(t.Name)
	case *ir.Raw:
		return t.Source
	default:
		snk.warnf("effect: unsupported IR kind %q, emitting Schema.Unknown", s.Kind())
		return "Schema.Unknown"
	}
}

func effectString(t *ir.String) string {
	var steps []string
	switch t.Format {
	case ir.FormatUUID:
		return "Schema.UUID"
	case ir.FormatEmail:
		steps = append(steps, `Schema.pattern(new RegExp("^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$"))`)
	case ir.FormatURL:
		steps = append(steps, `Schema.pattern(new RegExp("^https?://"))`)
	}
	if t.MinLength != nil {
		steps = append(steps, fmt.Sprintf("Schema.minLength(%d)", *t.MinLength))
	}
	if t.MaxLength != nil {
		steps = append(steps, fmt.Sprintf("Schema.maxLength(%d)", *t.MaxLength))
	}
	if t.Pattern != "" {
		steps = append(steps, fmt.Sprintf("Schema.pattern(new RegExp(%s))", naming.QuoteString(t.Pattern)))
	}
	return effectPipe("Schema.String", steps)
}

func effectPipe(base string, steps []string) string {
	if len(steps) == 0 {
		return base
	}
	return fmt.Sprintf("%s.pipe(%s)", base, strings.Join(steps, ", "))
}

func effectObject(t *ir.Object, snk *sink) string {
	var b strings.Builder
	b.WriteString("Schema.Struct({\n")
	for _, p := range t.Properties {
		core, hasNull, hasUndef := splitNullish(p.Schema)
		line := effectExpr(core, snk)
		if hasNull {
			line = fmt.Sprintf("Schema.NullOr(%s)", line)
		}
		if !p.Required || hasUndef {
			line = fmt.Sprintf("Schema.optional(%s)", line)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, "  /** %s */\n", sanitizeDoc(p.Description))
		}
		fmt.Fprintf(&b, "  %s: %s,\n", naming.PropertyKey(p.Name), line)
	}
	b.WriteString("}")
	switch t.Policy {
	case ir.AdditionalPassthrough:
		b.WriteString(", Schema.Record({ key: Schema.String, value: Schema.Unknown })")
	case ir.AdditionalSchema:
		fmt.Fprintf(&b, ", Schema.Record({ key: Schema.String, value: %s })", effectExpr(t.Additional, snk))
	}
	b.WriteString(")")
	return b.String()
}

// effectIntersection folds members pairwise with Schema.extend. This only
// composes struct-like members; anything else still emits but may need a
// manual override, which is reported.
func effectIntersection(t *ir.Intersection, snk *sink) string {
	if len(t.Members) == 0 {
		return "Schema.Unknown"
	}
	out := effectExpr(t.Members[0], snk)
	for _, m := range t.Members[1:] {
		if m.Kind() != ir.KindObject && m.Kind() != ir.KindRef {
			snk.warnf("effect: intersection member of kind %q may not compose with Schema.extend", m.Kind())
		}
		out = fmt.Sprintf("Schema.extend(%s, %s)", out, effectExpr(m, snk))
	}
	return out
}
