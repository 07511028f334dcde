package emit

import (
	"fmt"
	"strings"

	"github.com/schemac/schemac/ir"
	"github.com/schemac/schemac/naming"
)

// zodEmitter targets Zod v4's builder-style API.
type zodEmitter struct{}

func (e *zodEmitter) Library() Library { return LibraryZod }

func (e *zodEmitter) ImportStatement() string { return `import { z } from "zod";` }

func (e *zodEmitter) TypeInference(schemaVar, typeName string) string {
	return fmt.Sprintf("export type %s = z.infer<typeof %s>;", typeName, schemaVar)
}

func (e *zodEmitter) Emit(schemas []ir.Named, opts Options) Result {
	return renderModule(e, schemas, func(n ir.Named, s *sink) string {
		return zodExpr(n.Schema, s)
	})
}

func zodExpr(s ir.Schema, snk *sink) string {
	switch t := s.(type) {
	case *ir.String:
		return zodString(t)
	case *ir.Number:
		out := "z.number()"
		if t.Integer {
			out += ".int()"
		}
		if t.Min != nil {
			out += fmt.Sprintf(".min(%s)", formatFloat(*t.Min))
		}
		if t.Max != nil {
			out += fmt.Sprintf(".max(%s)", formatFloat(*t.Max))
		}
		return out
	case *ir.Boolean:
		return "z.boolean()"
	case *ir.BigInt:
		return "z.bigint()"
	case *ir.Null:
		return "z.null()"
	case *ir.Undefined:
		return "z.undefined()"
	case *ir.Unknown:
		return "z.unknown()"
	case *ir.Never:
		return "z.never()"
	case *ir.Date:
		return "z.date()"
	case *ir.Object:
		return zodObject(t, snk)
	case *ir.Array:
		return fmt.Sprintf("z.array(%s)", zodExpr(t.Items, snk))
	case *ir.Tuple:
		items := make([]string, 0, len(t.Items))
		for _, it := range t.Items {
			items = append(items, zodExpr(it, snk))
		}
		return fmt.Sprintf("z.tuple([%s])", strings.Join(items, ", "))
	case *ir.Record:
		return fmt.Sprintf("z.record(%s, %s)", zodExpr(t.Key, snk), zodExpr(t.Value, snk))
	case *ir.Enum:
		if enumIsStrings(t) {
			vals := make([]string, 0, len(t.Values))
			for _, v := range t.Values {
				vals = append(vals, formatLiteral(v))
			}
			return fmt.Sprintf("z.enum([%s])", strings.Join(vals, ", "))
		}
		// Non-string members fall back to a union of literals.
		vals := make([]string, 0, len(t.Values))
		for _, v := range t.Values {
			vals = append(vals, fmt.Sprintf("z.literal(%s)", formatLiteral(v)))
		}
		return fmt.Sprintf("z.union([%s])", strings.Join(vals, ", "))
	case *ir.Literal:
		return fmt.Sprintf("z.literal(%s)", formatLiteral(t.Value))
	case *ir.Union:
		members := make([]string, 0, len(t.Members))
		for _, m := range t.Members {
			members = append(members, zodExpr(m, snk))
		}
		return fmt.Sprintf("z.union([%s])", strings.Join(members, ", "))
	case *ir.Intersection:
		return zodIntersection(t, snk)
	case *ir.Ref:
		return naming.ToSchemaName(t.Name)
	case *ir.Raw:
		return t.Source
	default:
		snk.warnf("zod: unsupported IR kind %q, emitting z.unknown()", s.Kind())
		return "z.unknown()"
	}
}

func zodString(t *ir.String) string {
	var out string
	switch t.Format {
	case ir.FormatEmail:
		out = "z.email()"
	case ir.FormatURL:
		out = "z.url()"
	case ir.FormatUUID:
		out = "z.uuid()"
	case ir.FormatDateTime:
		out = "z.iso.datetime()"
	case ir.FormatDate:
		out = "z.iso.date()"
	case ir.FormatTime:
		out = "z.iso.time()"
	case ir.FormatIPv4:
		out = "z.ipv4()"
	case ir.FormatIPv6:
		out = "z.ipv6()"
	default:
		out = "z.string()"
	}
	if t.MinLength != nil {
		out += fmt.Sprintf(".min(%d)", *t.MinLength)
	}
	if t.MaxLength != nil {
		out += fmt.Sprintf(".max(%d)", *t.MaxLength)
	}
	if t.Pattern != "" {
		out += fmt.Sprintf(".regex(new RegExp(%s))", naming.QuoteString(t.Pattern))
	}
	return out
}

func zodObject(t *ir.Object, snk *sink) string {
	var b strings.Builder
	b.WriteString("z.object({\n")
	for _, p := range t.Properties {
		core, hasNull, hasUndef := splitNullish(p.Schema)
		line := zodExpr(core, snk)
		switch {
		case hasNull && hasUndef:
			line += ".nullish()"
		case hasNull && !p.Required:
			line += ".nullish()"
		case hasNull:
			line += ".nullable()"
		case !p.Required:
			line += ".optional()"
		}
		if p.Description != "" {
			fmt.Fprintf(&b, "  /** %s */\n", sanitizeDoc(p.Description))
		}
		fmt.Fprintf(&b, "  %s: %s,\n", naming.PropertyKey(p.Name), line)
	}
	b.WriteString("})")
	switch t.Policy {
	case ir.AdditionalStrict:
		b.WriteString(".strict()")
	case ir.AdditionalPassthrough:
		b.WriteString(".passthrough()")
	case ir.AdditionalSchema:
		fmt.Fprintf(&b, ".catchall(%s)", zodExpr(t.Additional, snk))
	}
	return b.String()
}

func zodIntersection(t *ir.Intersection, snk *sink) string {
	if len(t.Members) == 0 {
		return "z.unknown()"
	}
	out := zodExpr(t.Members[0], snk)
	for _, m := range t.Members[1:] {
		out = fmt.Sprintf("z.intersection(%s, %s)", out, zodExpr(m, snk))
	}
	return out
}
