// Package openapi lowers a loaded, dereference-ready OpenAPI document into
// named IR entries: every component schema, plus per-operation parameter
// ("Params"), request-body and response-body schemas. Nullability follows the
// OpenAPI conventions: `nullable: true` wraps in a null union, and a parameter
// with `required: false` is optional only (simple absence, never explicit
// null) unless its schema is separately nullable.
package openapi

import (
	"errors"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/schemac/schemac/ir"
	"github.com/schemac/schemac/naming"
)

// Options configures OpenAPI-to-IR lowering.
type Options struct {
	// Scalars maps custom format names (e.g. "DateTime") to validator-specific
	// raw expressions, emitted verbatim.
	Scalars map[string]string
	// Include/Exclude are doublestar globs over path templates.
	Include []string
	Exclude []string
}

type parser struct {
	doc  *openapi3.T
	opts Options
	diag *ir.Diag
	out  []ir.Named
}

// Parse lowers doc into a topologically ordered Result. A nil document is a
// structural impossibility and errors out; everything recoverable degrades to
// warnings.
func Parse(doc *openapi3.T, opts Options) (ir.Result, error) {
	if doc == nil {
		return ir.Result{}, errors.New("openapi: nil document")
	}
	p := &parser{doc: doc, opts: opts, diag: &ir.Diag{}}
	p.lowerComponents()
	for _, path := range FilterPaths(doc, opts.Include, opts.Exclude) {
		p.lowerPath(path, doc.Paths.Value(path))
	}
	return ir.Result{Schemas: ir.SortSchemas(p.out), Warnings: p.diag.Warnings()}, nil
}

func (p *parser) lowerComponents() {
	if p.doc.Components == nil || len(p.doc.Components.Schemas) == 0 {
		return
	}
	names := make([]string, 0, len(p.doc.Components.Schemas))
	for name := range p.doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m := p.lowerRef(p.doc.Components.Schemas[name])
		p.emit(naming.ToPascalCase(name), m.Collapse(), ir.CategoryComponent)
	}
}

func (p *parser) lowerPath(path string, item *openapi3.PathItem) {
	if item == nil {
		return
	}
	ops := item.Operations()
	methods := make([]string, 0, len(ops))
	for m := range ops {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	for _, method := range methods {
		p.lowerOperation(path, method, item, ops[method])
	}
}

func (p *parser) lowerOperation(path, method string, item *openapi3.PathItem, op *openapi3.Operation) {
	name := operationName(path, method, op)

	params := append(openapi3.Parameters{}, item.Parameters...)
	params = append(params, op.Parameters...)
	if obj := p.lowerParameters(name, params); obj != nil {
		p.emit(name+"Params", obj, ir.CategoryParams)
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		if ref := jsonSchemaOf(op.RequestBody.Value.Content); ref != nil {
			p.emit(name+"Request", p.lowerRef(ref).Collapse(), ir.CategoryInput)
		}
	}

	if ref := successResponse(op.Responses); ref != nil {
		p.emit(name+"Response", p.lowerRef(ref).Collapse(), ir.CategoryResponse)
	}
}

// lowerParameters groups an operation's path and query parameters into one
// object schema; header and cookie parameters stay out of the data layer.
// Returns nil when the operation declares none.
func (p *parser) lowerParameters(owner string, params openapi3.Parameters) *ir.Object {
	obj := &ir.Object{}
	for _, pr := range params {
		param := pr.Value
		if param == nil {
			continue
		}
		if param.In != openapi3.ParameterInPath && param.In != openapi3.ParameterInQuery {
			continue
		}
		m := ir.Modified{Schema: &ir.Unknown{}}
		if param.Schema != nil {
			m = p.lowerRef(param.Schema)
		} else {
			p.diag.Warnf("%s: parameter %q has no schema, emitting unknown", owner, param.Name)
		}
		// Wire convention for parameters is simple absence, not explicit null.
		m.Optional = !param.Required
		prop := ir.Property{
			Name:        param.Name,
			Schema:      m.Collapse(),
			Required:    m.Required(),
			Description: param.Description,
		}
		obj.Properties = append(obj.Properties, prop)
	}
	if len(obj.Properties) == 0 {
		return nil
	}
	return obj
}

func (p *parser) lowerRef(ref *openapi3.SchemaRef) ir.Modified {
	if ref == nil {
		return ir.Modified{Schema: &ir.Unknown{}}
	}
	if ref.Ref != "" {
		return ir.Modified{Schema: &ir.Ref{Name: componentName(ref.Ref)}}
	}
	return p.lowerSchema(ref.Value)
}

func (p *parser) lowerSchema(s *openapi3.Schema) ir.Modified {
	if s == nil {
		return ir.Modified{Schema: &ir.Unknown{}}
	}
	// Both nullability spellings wrap the same way: 3.0's `nullable: true` and
	// 3.1's "null" member in a type array.
	m := ir.Modified{Nullable: s.Nullable || s.Type.Includes(openapi3.TypeNull)}

	switch {
	case len(s.Enum) > 0:
		m.Schema = lowerEnum(s)
	case len(s.OneOf) > 0:
		m.Schema = p.lowerComposite(s.OneOf, s.Description, false)
	case len(s.AnyOf) > 0:
		m.Schema = p.lowerComposite(s.AnyOf, s.Description, false)
	case len(s.AllOf) > 0:
		m.Schema = p.lowerComposite(s.AllOf, s.Description, true)
	default:
		m.Schema = p.lowerTyped(s)
	}
	return m
}

// lowerComposite maps oneOf/anyOf to a union and allOf to an intersection.
// Members resolve independently; no structural merging happens at the IR
// level. The target validator's composition semantics own that.
func (p *parser) lowerComposite(refs openapi3.SchemaRefs, desc string, intersect bool) ir.Schema {
	members := make([]ir.Schema, 0, len(refs))
	for _, r := range refs {
		members = append(members, p.lowerRef(r).Collapse())
	}
	if intersect {
		return &ir.Intersection{Members: members, Description: desc}
	}
	return &ir.Union{Members: members, Description: desc}
}

// lowerTyped dispatches on the schema's type. 3.1 type arrays are handled by
// parts: "null" was already folded into nullability by lowerSchema; one
// remaining type lowers directly, several lower to a union.
func (p *parser) lowerTyped(s *openapi3.Schema) ir.Schema {
	types := nonNullTypes(s.Type)
	switch len(types) {
	case 0:
		return &ir.Unknown{Description: s.Description}
	case 1:
		return p.lowerSingleType(types[0], s)
	}
	members := make([]ir.Schema, 0, len(types))
	for _, t := range types {
		members = append(members, p.lowerSingleType(t, s))
	}
	return &ir.Union{Members: members, Description: s.Description}
}

func (p *parser) lowerSingleType(typ string, s *openapi3.Schema) ir.Schema {
	switch typ {
	case openapi3.TypeObject:
		return p.lowerObject(s)
	case openapi3.TypeArray:
		return &ir.Array{Items: p.lowerRef(s.Items).Collapse(), Description: s.Description}
	case openapi3.TypeString:
		return p.lowerString(s)
	case openapi3.TypeInteger:
		return &ir.Number{Integer: true, Min: s.Min, Max: s.Max, Description: s.Description}
	case openapi3.TypeNumber:
		return &ir.Number{Min: s.Min, Max: s.Max, Description: s.Description}
	case openapi3.TypeBoolean:
		return &ir.Boolean{Description: s.Description}
	case openapi3.TypeNull:
		return &ir.Null{Description: s.Description}
	default:
		p.diag.Warnf("unsupported schema type %q, emitting unknown", typ)
		return &ir.Unknown{Description: s.Description}
	}
}

// nonNullTypes returns the declared type names with "null" stripped; the null
// member is expressed through nullability, not as a union member.
func nonNullTypes(t *openapi3.Types) []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(*t))
	for _, name := range *t {
		if name != openapi3.TypeNull {
			out = append(out, name)
		}
	}
	return out
}

func (p *parser) lowerObject(s *openapi3.Schema) ir.Schema {
	required := map[string]bool{}
	for _, r := range s.Required {
		required[r] = true
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	obj := &ir.Object{Description: s.Description}
	for _, name := range names {
		m := p.lowerRef(s.Properties[name])
		m.Optional = !required[name]
		obj.Properties = append(obj.Properties, ir.Property{
			Name:        name,
			Schema:      m.Collapse(),
			Required:    m.Required(),
			Description: propertyDescription(s.Properties[name]),
		})
	}

	ap := s.AdditionalProperties
	switch {
	case ap.Schema != nil:
		obj.Policy = ir.AdditionalSchema
		obj.Additional = p.lowerRef(ap.Schema).Collapse()
	case ap.Has != nil && *ap.Has:
		obj.Policy = ir.AdditionalPassthrough
	case ap.Has != nil:
		obj.Policy = ir.AdditionalStrict
	}

	// A pure map: no declared properties, only a typed catch-all.
	if len(obj.Properties) == 0 && obj.Policy == ir.AdditionalSchema {
		return &ir.Record{Key: &ir.String{}, Value: obj.Additional, Description: s.Description}
	}
	return obj
}

func (p *parser) lowerString(s *openapi3.Schema) ir.Schema {
	if src, ok := p.opts.Scalars[s.Format]; ok && s.Format != "" {
		return &ir.Raw{Source: src, Description: s.Description}
	}
	out := &ir.String{Pattern: s.Pattern, Description: s.Description}
	switch s.Format {
	case "email":
		out.Format = ir.FormatEmail
	case "uri", "url":
		out.Format = ir.FormatURL
	case "uuid":
		out.Format = ir.FormatUUID
	case "date-time":
		out.Format = ir.FormatDateTime
	case "date":
		out.Format = ir.FormatDate
	case "time":
		out.Format = ir.FormatTime
	case "ipv4":
		out.Format = ir.FormatIPv4
	case "ipv6":
		out.Format = ir.FormatIPv6
	}
	if s.MinLength > 0 {
		v := int(s.MinLength)
		out.MinLength = &v
	}
	if s.MaxLength != nil {
		v := int(*s.MaxLength)
		out.MaxLength = &v
	}
	return out
}

// lowerEnum maps an enum to IR enum when all values share one primitive type,
// otherwise to a union of literals.
func lowerEnum(s *openapi3.Schema) ir.Schema {
	allStrings := true
	allNumbers := true
	for _, v := range s.Enum {
		switch v.(type) {
		case string:
			allNumbers = false
		case float64, int, int64:
			allStrings = false
		default:
			allStrings = false
			allNumbers = false
		}
	}
	if allStrings || allNumbers {
		return &ir.Enum{Values: append([]any(nil), s.Enum...), Description: s.Description}
	}
	members := make([]ir.Schema, 0, len(s.Enum))
	for _, v := range s.Enum {
		members = append(members, &ir.Literal{Value: v})
	}
	return &ir.Union{Members: members, Description: s.Description}
}

func (p *parser) emit(name string, s ir.Schema, cat ir.Category) {
	p.out = append(p.out, ir.NewNamed(name, s, cat))
}

func propertyDescription(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Ref != "" || ref.Value == nil {
		return ""
	}
	return ref.Value.Description
}

// componentName extracts the component name from a $ref like
// "#/components/schemas/User".
func componentName(ref string) string {
	parts := strings.Split(ref, "/")
	return naming.ToPascalCase(parts[len(parts)-1])
}

// operationName derives the entry-name stem for one operation: the
// operationId when declared, else the method plus the path template with
// parameter braces dropped.
func operationName(path, method string, op *openapi3.Operation) string {
	if op.OperationID != "" {
		return naming.ToPascalCase(op.OperationID)
	}
	cleaned := strings.NewReplacer("{", "", "}", "", "/", "-", ".", "-").Replace(path)
	return naming.ToPascalCase(strings.ToLower(method) + "-" + strings.Trim(cleaned, "-"))
}

// jsonSchemaOf picks the JSON media type's schema out of a content map.
func jsonSchemaOf(content openapi3.Content) *openapi3.SchemaRef {
	for _, ct := range []string{"application/json", "application/json; charset=utf-8", "*/*"} {
		if mt, ok := content[ct]; ok && mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}

// successResponse picks the lowest 2xx response carrying a JSON schema.
func successResponse(responses *openapi3.Responses) *openapi3.SchemaRef {
	if responses == nil {
		return nil
	}
	byCode := responses.Map()
	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if len(code) != 3 || code[0] != '2' {
			continue
		}
		r := byCode[code]
		if r == nil || r.Value == nil {
			continue
		}
		if ref := jsonSchemaOf(r.Value.Content); ref != nil {
			return ref
		}
	}
	return nil
}
