package emit

import (
	"fmt"
	"strings"

	"github.com/schemac/schemac/ir"
	"github.com/schemac/schemac/naming"
)

// arkEmitter targets ArkType's string-definition DSL. Nodes render in one of
// three shapes: a DSL fragment (goes inside a quoted string definition), a
// definition value (object/tuple literal, embeddable as-is), or a Type
// expression (type.enumerated(...), schema-variable refs, raw overrides).
type arkEmitter struct{}

type arkShape int

const (
	arkDSL arkShape = iota
	arkDef
	arkExpr
)

type arkNode struct {
	code  string
	shape arkShape
}

func (e *arkEmitter) Library() Library { return LibraryArkType }

func (e *arkEmitter) ImportStatement() string { return `import { type } from "arktype";` }

func (e *arkEmitter) TypeInference(schemaVar, typeName string) string {
	return fmt.Sprintf("export type %s = typeof %s.infer;", typeName, schemaVar)
}

func (e *arkEmitter) Emit(schemas []ir.Named, opts Options) Result {
	return renderModule(e, schemas, func(n ir.Named, s *sink) string {
		return arkTopLevel(arkRender(n.Schema, s))
	})
}

// arkTopLevel renders a node as a standalone Type expression.
func arkTopLevel(n arkNode) string {
	switch n.shape {
	case arkDSL:
		return fmt.Sprintf("type(%s)", naming.QuoteString(n.code))
	case arkDef:
		return fmt.Sprintf("type(%s)", n.code)
	default:
		return n.code
	}
}

// arkEmbed renders a node as a value inside a definition (object property,
// tuple element, or record value). DSL fragments become quoted strings;
// definitions and expressions embed directly.
func arkEmbed(n arkNode) string {
	if n.shape == arkDSL {
		return naming.QuoteString(n.code)
	}
	return n.code
}

func arkRender(s ir.Schema, snk *sink) arkNode {
	switch t := s.(type) {
	case *ir.String:
		return arkNode{code: arkString(t, snk), shape: arkDSL}
	case *ir.Number:
		base := "number"
		if t.Integer {
			base = "number.integer"
		}
		var parts []string
		parts = append(parts, base)
		if t.Min != nil {
			parts = append(parts, fmt.Sprintf("number >= %s", formatFloat(*t.Min)))
		}
		if t.Max != nil {
			parts = append(parts, fmt.Sprintf("number <= %s", formatFloat(*t.Max)))
		}
		return arkNode{code: strings.Join(parts, " & "), shape: arkDSL}
	case *ir.Boolean:
		return arkNode{code: "boolean", shape: arkDSL}
	case *ir.BigInt:
		return arkNode{code: "bigint", shape: arkDSL}
	case *ir.Null:
		return arkNode{code: "null", shape: arkDSL}
	case *ir.Undefined:
		return arkNode{code: "undefined", shape: arkDSL}
	case *ir.Unknown:
		return arkNode{code: "unknown", shape: arkDSL}
	case *ir.Never:
		return arkNode{code: "never", shape: arkDSL}
	case *ir.Date:
		return arkNode{code: "Date", shape: arkDSL}
	case *ir.Object:
		return arkObject(t, snk)
	case *ir.Array:
		inner := arkRender(t.Items, snk)
		if inner.shape == arkDSL {
			code := inner.code
			if strings.ContainsAny(code, " |&") {
				code = "(" + code + ")"
			}
			return arkNode{code: code + "[]", shape: arkDSL}
		}
		return arkNode{code: arkTopLevel(inner) + ".array()", shape: arkExpr}
	case *ir.Tuple:
		items := make([]string, 0, len(t.Items))
		for _, it := range t.Items {
			items = append(items, arkEmbed(arkRender(it, snk)))
		}
		return arkNode{code: "[" + strings.Join(items, ", ") + "]", shape: arkDef}
	case *ir.Record:
		if _, ok := t.Key.(*ir.String); !ok {
			snk.warnf("arktype: record keys must be strings, got %q", t.Key.Kind())
		}
		return arkNode{code: fmt.Sprintf(`{ "[string]": %s }`, arkEmbed(arkRender(t.Value, snk))), shape: arkDef}
	case *ir.Enum:
		vals := make([]string, 0, len(t.Values))
		for _, v := range t.Values {
			vals = append(vals, formatLiteral(v))
		}
		return arkNode{code: fmt.Sprintf("type.enumerated(%s)", strings.Join(vals, ", ")), shape: arkExpr}
	case *ir.Literal:
		return arkNode{code: arkLiteralDSL(t.Value), shape: arkDSL}
	case *ir.Union:
		return arkJoin(t.Members, " | ", ".or", snk)
	case *ir.Intersection:
		return arkJoin(t.Members, " & ", ".and", snk)
	case *ir.Ref:
		return arkNode{code: naming.ToSchemaName(t.Name), shape: arkExpr}
	case *ir.Raw:
		return arkNode{code: t.Source, shape: arkExpr}
	default:
		snk.warnf("arktype: unsupported IR kind %q, emitting unknown", s.Kind())
		return arkNode{code: "unknown", shape: arkDSL}
	}
}

func arkString(t *ir.String, snk *sink) string {
	var base string
	switch t.Format {
	case ir.FormatEmail:
		base = "string.email"
	case ir.FormatURL:
		base = "string.url"
	case ir.FormatUUID:
		base = "string.uuid"
	case ir.FormatDateTime, ir.FormatDate:
		base = "string.date.iso"
	case ir.FormatIPv4, ir.FormatIPv6:
		base = "string.ip"
	case ir.FormatTime:
		// No time-of-day keyword in the DSL.
		snk.warnf("arktype: no keyword for the time format, emitting plain string")
		base = "string"
	default:
		base = "string"
	}
	parts := []string{base}
	if t.MinLength != nil {
		parts = append(parts, fmt.Sprintf("string >= %d", *t.MinLength))
	}
	if t.MaxLength != nil {
		parts = append(parts, fmt.Sprintf("string <= %d", *t.MaxLength))
	}
	if t.Pattern != "" {
		parts = append(parts, "/"+t.Pattern+"/")
	}
	return strings.Join(parts, " & ")
}

func arkLiteralDSL(v any) string {
	if s, ok := v.(string); ok {
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	}
	return formatLiteral(v)
}

// arkJoin combines members with the DSL operator when every member is a DSL
// fragment, otherwise with the chained method form.
func arkJoin(members []ir.Schema, dslOp, method string, snk *sink) arkNode {
	if len(members) == 0 {
		return arkNode{code: "never", shape: arkDSL}
	}
	nodes := make([]arkNode, 0, len(members))
	allDSL := true
	for _, m := range members {
		n := arkRender(m, snk)
		if n.shape != arkDSL {
			allDSL = false
		}
		nodes = append(nodes, n)
	}
	if allDSL {
		parts := make([]string, 0, len(nodes))
		for _, n := range nodes {
			parts = append(parts, n.code)
		}
		return arkNode{code: strings.Join(parts, dslOp), shape: arkDSL}
	}
	out := arkTopLevel(nodes[0])
	for _, n := range nodes[1:] {
		out = fmt.Sprintf("%s%s(%s)", out, method, arkEmbed(n))
	}
	return arkNode{code: out, shape: arkExpr}
}

func arkObject(t *ir.Object, snk *sink) arkNode {
	var b strings.Builder
	b.WriteString("{\n")
	for _, p := range t.Properties {
		core, hasNull, hasUndef := splitNullish(p.Schema)
		val := arkRender(core, snk)
		if hasNull {
			if val.shape == arkDSL {
				val.code += " | null"
			} else {
				val = arkNode{code: arkTopLevel(val) + `.or("null")`, shape: arkExpr}
			}
		}
		key := p.Name
		if !p.Required || hasUndef {
			key += "?"
		}
		if p.Description != "" {
			fmt.Fprintf(&b, "  /** %s */\n", sanitizeDoc(p.Description))
		}
		fmt.Fprintf(&b, "  %s: %s,\n", arkKey(key), arkEmbed(val))
	}
	if t.Policy == ir.AdditionalStrict {
		b.WriteString("  \"+\": \"reject\",\n")
	}
	if t.Policy == ir.AdditionalSchema && t.Additional != nil {
		fmt.Fprintf(&b, "  \"[string]\": %s,\n", arkEmbed(arkRender(t.Additional, snk)))
	}
	b.WriteString("}")
	return arkNode{code: b.String(), shape: arkDef}
}

// arkKey quotes a property key; the optional marker forces quoting because a
// trailing "?" is not a valid bare identifier.
func arkKey(key string) string {
	if naming.IsIdentifier(key) {
		return key
	}
	return naming.QuoteString(key)
}
