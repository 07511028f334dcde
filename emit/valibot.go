package emit

import (
	"fmt"
	"strings"

	"github.com/schemac/schemac/ir"
	"github.com/schemac/schemac/naming"
)

// valibotEmitter targets Valibot v1's pipe-based API.
type valibotEmitter struct{}

func (e *valibotEmitter) Library() Library { return LibraryValibot }

func (e *valibotEmitter) ImportStatement() string { return `import * as v from "valibot";` }

func (e *valibotEmitter) TypeInference(schemaVar, typeName string) string {
	return fmt.Sprintf("export type %s = v.InferOutput<typeof %s>;", typeName, schemaVar)
}

func (e *valibotEmitter) Emit(schemas []ir.Named, opts Options) Result {
	return renderModule(e, schemas, func(n ir.Named, s *sink) string {
		return valibotExpr(n.Schema, s)
	})
}

func valibotExpr(s ir.Schema, snk *sink) string {
	switch t := s.(type) {
	case *ir.String:
		return valibotString(t)
	case *ir.Number:
		var steps []string
		if t.Integer {
			steps = append(steps, "v.integer()")
		}
		if t.Min != nil {
			steps = append(steps, fmt.Sprintf("v.minValue(%s)", formatFloat(*t.Min)))
		}
		if t.Max != nil {
			steps = append(steps, fmt.Sprintf("v.maxValue(%s)", formatFloat(*t.Max)))
		}
		return valibotPipe("v.number()", steps)
	case *ir.Boolean:
		return "v.boolean()"
	case *ir.BigInt:
		return "v.bigint()"
	case *ir.Null:
		return "v.null()"
	case *ir.Undefined:
		return "v.undefined()"
	case *ir.Unknown:
		return "v.unknown()"
	case *ir.Never:
		return "v.never()"
	case *ir.Date:
		return "v.date()"
	case *ir.Object:
		return valibotObject(t, snk)
	case *ir.Array:
		return fmt.Sprintf("v.array(%s)", valibotExpr(t.Items, snk))
	case *ir.Tuple:
		items := make([]string, 0, len(t.Items))
		for _, it := range t.Items {
			items = append(items, valibotExpr(it, snk))
		}
		return fmt.Sprintf("v.tuple([%s])", strings.Join(items, ", "))
	case *ir.Record:
		return fmt.Sprintf("v.record(%s, %s)", valibotExpr(t.Key, snk), valibotExpr(t.Value, snk))
	case *ir.Enum:
		vals := make([]string, 0, len(t.Values))
		for _, v := range t.Values {
			vals = append(vals, formatLiteral(v))
		}
		return fmt.Sprintf("v.picklist([%s])", strings.Join(vals, ", "))
	case *ir.Literal:
		return fmt.Sprintf("v.literal(%s)", formatLiteral(t.Value))
	case *ir.Union:
		members := make([]string, 0, len(t.Members))
		for _, m := range t.Members {
			members = append(members, valibotExpr(m, snk))
		}
		return fmt.Sprintf("v.union([%s])", strings.Join(members, ", "))
	case *ir.Intersection:
		members := make([]string, 0, len(t.Members))
		for _, m := range t.Members {
			members = append(members, valibotExpr(m, snk))
		}
		return fmt.Sprintf("v.intersect([%s])", strings.Join(members, ", "))
	case *ir.Ref:
		return naming.ToSchemaName(t.Name)
	case *ir.Raw:
		return t.Source
	default:
		snk.warnf("valibot: unsupported IR kind %q, emitting v.unknown()", s.Kind())
		return "v.unknown()"
	}
}

func valibotString(t *ir.String) string {
	var steps []string
	switch t.Format {
	case ir.FormatEmail:
		steps = append(steps, "v.email()")
	case ir.FormatURL:
		steps = append(steps, "v.url()")
	case ir.FormatUUID:
		steps = append(steps, "v.uuid()")
	case ir.FormatDateTime:
		steps = append(steps, "v.isoTimestamp()")
	case ir.FormatDate:
		steps = append(steps, "v.isoDate()")
	case ir.FormatTime:
		steps = append(steps, "v.isoTime()")
	case ir.FormatIPv4:
		steps = append(steps, "v.ipv4()")
	case ir.FormatIPv6:
		steps = append(steps, "v.ipv6()")
	}
	if t.MinLength != nil {
		steps = append(steps, fmt.Sprintf("v.minLength(%d)", *t.MinLength))
	}
	if t.MaxLength != nil {
		steps = append(steps, fmt.Sprintf("v.maxLength(%d)", *t.MaxLength))
	}
	if t.Pattern != "" {
		steps = append(steps, fmt.Sprintf("v.regex(new RegExp(%s))", naming.QuoteString(t.Pattern)))
	}
	return valibotPipe("v.string()", steps)
}

func valibotPipe(base string, steps []string) string {
	if len(steps) == 0 {
		return base
	}
	return fmt.Sprintf("v.pipe(%s, %s)", base, strings.Join(steps, ", "))
}

func valibotObject(t *ir.Object, snk *sink) string {
	var b strings.Builder
	ctor := "v.object"
	switch t.Policy {
	case ir.AdditionalStrict:
		ctor = "v.strictObject"
	case ir.AdditionalPassthrough:
		ctor = "v.looseObject"
	case ir.AdditionalSchema:
		ctor = "v.objectWithRest"
	}
	b.WriteString(ctor)
	b.WriteString("({\n")
	for _, p := range t.Properties {
		core, hasNull, hasUndef := splitNullish(p.Schema)
		line := valibotExpr(core, snk)
		switch {
		case hasNull && hasUndef:
			line = fmt.Sprintf("v.nullish(%s)", line)
		case hasNull && !p.Required:
			line = fmt.Sprintf("v.nullish(%s)", line)
		case hasNull:
			line = fmt.Sprintf("v.nullable(%s)", line)
		case !p.Required:
			line = fmt.Sprintf("v.optional(%s)", line)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, "  /** %s */\n", sanitizeDoc(p.Description))
		}
		fmt.Fprintf(&b, "  %s: %s,\n", naming.PropertyKey(p.Name), line)
	}
	b.WriteString("}")
	if t.Policy == ir.AdditionalSchema {
		fmt.Fprintf(&b, ", %s", valibotExpr(t.Additional, snk))
	}
	b.WriteString(")")
	return b.String()
}
