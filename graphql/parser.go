// Package graphql lowers a GraphQL schema plus parsed operation documents
// into named IR entries: enums, input objects, object types reachable from
// operation selections, fragment schemas, and per-operation variables and
// response shapes. Response shapes reflect the operation's selection set, not
// the full type.
//
// Documents are expected unvalidated (gqlparser/v2/parser.ParseQuery): a
// malformed operation or an unresolvable fragment spread degrades to a warning
// so the rest of the document set still generates.
package graphql

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/schemac/schemac/ir"
)

// Options configures GraphQL-to-IR lowering.
type Options struct {
	// Scalars maps custom scalar names to validator-specific raw expressions,
	// emitted verbatim. Scalars without an override lower to unknown with a
	// warning.
	Scalars map[string]string
}

type typeContext int

const (
	ctxResponse typeContext = iota
	ctxInput
	ctxElement // list element: nullable, never nullish, in any context
)

type parser struct {
	schema    *ast.Schema
	fragments map[string]*ast.FragmentDefinition
	opts      Options

	diag *ir.Diag
	out  []ir.Named

	// queued named types that must be emitted as full entries, in
	// first-encounter order.
	queue  []string
	queued map[string]bool

	warnedScalars map[string]bool
}

// Parse lowers schema and docs into a topologically ordered Result.
func Parse(schema *ast.Schema, docs []*ast.QueryDocument, opts Options) ir.Result {
	p := &parser{
		schema:        schema,
		fragments:     map[string]*ast.FragmentDefinition{},
		opts:          opts,
		diag:          &ir.Diag{},
		queued:        map[string]bool{},
		warnedScalars: map[string]bool{},
	}
	for _, doc := range docs {
		for _, f := range doc.Fragments {
			p.fragments[f.Name] = f
		}
	}
	for _, doc := range docs {
		for _, op := range doc.Operations {
			p.lowerOperation(op)
		}
	}
	for _, doc := range docs {
		for _, f := range doc.Fragments {
			p.lowerFragment(f)
		}
	}
	p.drainQueue()
	return ir.Result{Schemas: ir.SortSchemas(p.out), Warnings: p.diag.Warnings()}
}

func (p *parser) lowerOperation(op *ast.OperationDefinition) {
	if op.Name == "" {
		p.diag.Warnf("anonymous %s operation skipped; name the operation to generate schemas for it", op.Operation)
		return
	}
	root := p.rootType(op.Operation)
	if root == nil {
		p.diag.Warnf("operation %s: schema declares no %s root type", op.Name, op.Operation)
		return
	}

	if len(op.VariableDefinitions) > 0 {
		obj := &ir.Object{}
		for _, v := range op.VariableDefinitions {
			m := p.convertType(v.Type, ctxInput)
			obj.Properties = append(obj.Properties, ir.Property{
				Name:     v.Variable,
				Schema:   m.Collapse(),
				Required: m.Required(),
			})
		}
		p.emit(variablesName(op.Operation, op.Name), obj, ir.CategoryVariables)
	}

	shape := p.lowerSelectionSet(op.Name, root, op.SelectionSet)
	p.emit(responseName(op.Operation, op.Name), shape, ir.CategoryResponse)
}

func (p *parser) lowerFragment(f *ast.FragmentDefinition) {
	cond := p.schema.Types[f.TypeCondition]
	if cond == nil {
		p.diag.Warnf("fragment %s: unknown type condition %q", f.Name, f.TypeCondition)
		return
	}
	shape := p.lowerSelectionSet(f.Name, cond, f.SelectionSet)
	p.emit(FragmentName(f.Name), shape, ir.CategoryFragment)
}

func (p *parser) rootType(kind ast.Operation) *ast.Definition {
	switch kind {
	case ast.Mutation:
		return p.schema.Mutation
	case ast.Subscription:
		return p.schema.Subscription
	default:
		return p.schema.Query
	}
}

// lowerSelectionSet builds the shape an operation actually returns: only the
// selected fields. Inline fragments are flattened into the enclosing object;
// fragment spreads stay shared as refs to the fragment's own entry, combined
// through an intersection.
func (p *parser) lowerSelectionSet(owner string, def *ast.Definition, sels ast.SelectionSet) ir.Schema {
	obj := &ir.Object{Description: def.Description}
	var spreads []ir.Schema

	var walk func(def *ast.Definition, sels ast.SelectionSet)
	walk = func(def *ast.Definition, sels ast.SelectionSet) {
		for _, sel := range sels {
			switch s := sel.(type) {
			case *ast.Field:
				name := s.Alias
				if name == "" {
					name = s.Name
				}
				if s.Name == "__typename" {
					obj.Properties = append(obj.Properties, ir.Property{
						Name: name, Schema: &ir.Literal{Value: def.Name}, Required: true,
					})
					continue
				}
				fd := fieldDef(def, s.Name)
				if fd == nil {
					p.diag.Warnf("%s: field %q not found on type %s", owner, s.Name, def.Name)
					continue
				}
				m := p.lowerFieldType(owner, fd.Type, s.SelectionSet)
				obj.Properties = append(obj.Properties, ir.Property{
					Name:        name,
					Schema:      m.Collapse(),
					Required:    m.Required(),
					Description: fd.Description,
				})
			case *ast.FragmentSpread:
				f, ok := p.fragments[s.Name]
				if !ok {
					p.diag.Warnf("%s: unresolved fragment spread %q", owner, s.Name)
					continue
				}
				spreads = append(spreads, &ir.Ref{Name: FragmentName(f.Name)})
			case *ast.InlineFragment:
				inner := def
				if s.TypeCondition != "" {
					if d := p.schema.Types[s.TypeCondition]; d != nil {
						inner = d
					} else {
						p.diag.Warnf("%s: unknown inline fragment type %q", owner, s.TypeCondition)
						continue
					}
				}
				walk(inner, s.SelectionSet)
			}
		}
	}
	walk(def, sels)

	if len(spreads) == 0 {
		return obj
	}
	if len(obj.Properties) == 0 && len(spreads) == 1 {
		return spreads[0]
	}
	return &ir.Intersection{Members: append([]ir.Schema{obj}, spreads...)}
}

// lowerFieldType converts a response-position field type, descending into the
// selection set for composite leaves.
func (p *parser) lowerFieldType(owner string, t *ast.Type, sels ast.SelectionSet) ir.Modified {
	if t.Elem != nil {
		inner := p.lowerFieldType(owner, t.Elem, sels)
		return ir.Modified{Schema: &ir.Array{Items: inner.Collapse()}, Nullable: !t.NonNull}
	}
	def := p.schema.Types[t.NamedType]
	if def != nil && isComposite(def.Kind) && len(sels) > 0 {
		// The response carries only what was selected, but the full type is
		// still reachable and gets its own entry.
		p.enqueue(def.Name)
		return ir.Modified{Schema: p.lowerSelectionSet(owner, def, sels), Nullable: !t.NonNull}
	}
	m := p.convertNamed(t.NamedType)
	m.Nullable = !t.NonNull
	return m
}

// convertType lowers a type-wrapper chain (non-null / list) in the given
// context. Absence of the non-null wrapper means nullable in responses and
// nullish (absent or explicitly null) in variable/input positions; list
// elements are only ever nullable, since an absent array element does not
// exist on the wire.
func (p *parser) convertType(t *ast.Type, ctx typeContext) ir.Modified {
	var m ir.Modified
	if t.Elem != nil {
		inner := p.convertType(t.Elem, ctxElement)
		m.Schema = &ir.Array{Items: inner.Collapse()}
	} else {
		m.Schema = p.convertNamed(t.NamedType).Schema
	}
	if !t.NonNull {
		if ctx == ctxInput {
			m.Nullish = true
		} else {
			m.Nullable = true
		}
	}
	return m
}

// convertNamed lowers a named leaf type. Enum and input-object references stay
// refs to their own entries, which are queued for emission.
func (p *parser) convertNamed(name string) ir.Modified {
	def := p.schema.Types[name]
	if def == nil {
		p.diag.Warnf("unknown type %q, emitting unknown", name)
		return ir.Modified{Schema: &ir.Unknown{}}
	}
	switch def.Kind {
	case ast.Scalar:
		return ir.Modified{Schema: p.scalar(def)}
	case ast.Enum:
		p.enqueue(def.Name)
		return ir.Modified{Schema: &ir.Ref{Name: def.Name}}
	case ast.InputObject:
		p.enqueue(def.Name)
		return ir.Modified{Schema: &ir.Ref{Name: def.Name}}
	case ast.Union:
		members := make([]ir.Schema, 0, len(def.Types))
		for _, m := range def.Types {
			p.enqueue(m)
			members = append(members, &ir.Ref{Name: m})
		}
		return ir.Modified{Schema: &ir.Union{Members: members, Description: def.Description}}
	default: // Object, Interface
		p.enqueue(def.Name)
		return ir.Modified{Schema: &ir.Ref{Name: def.Name}}
	}
}

func (p *parser) scalar(def *ast.Definition) ir.Schema {
	switch def.Name {
	case "String":
		return &ir.String{}
	case "ID":
		return &ir.String{}
	case "Int":
		return &ir.Number{Integer: true}
	case "Float":
		return &ir.Number{}
	case "Boolean":
		return &ir.Boolean{}
	}
	if src, ok := p.opts.Scalars[def.Name]; ok {
		return &ir.Raw{Source: src, Description: def.Description}
	}
	if !p.warnedScalars[def.Name] {
		p.warnedScalars[def.Name] = true
		p.diag.Warnf("custom scalar %q has no configured override, emitting unknown", def.Name)
	}
	return &ir.Unknown{Description: def.Description}
}

// enqueue marks a named type for full-entry emission, once.
func (p *parser) enqueue(name string) {
	if p.queued[name] {
		return
	}
	p.queued[name] = true
	p.queue = append(p.queue, name)
}

// drainQueue emits full entries for queued types. Lowering a type can queue
// further types, so this loops until the worklist empties.
func (p *parser) drainQueue() {
	for i := 0; i < len(p.queue); i++ {
		def := p.schema.Types[p.queue[i]]
		if def == nil {
			continue
		}
		switch def.Kind {
		case ast.Enum:
			vals := make([]any, 0, len(def.EnumValues))
			for _, v := range def.EnumValues {
				vals = append(vals, v.Name)
			}
			p.emit(def.Name, &ir.Enum{Values: vals, Description: def.Description}, ir.CategoryEnum)
		case ast.InputObject:
			obj := &ir.Object{Description: def.Description}
			for _, f := range def.Fields {
				m := p.convertType(f.Type, ctxInput)
				obj.Properties = append(obj.Properties, ir.Property{
					Name:        f.Name,
					Schema:      m.Collapse(),
					Required:    m.Required(),
					Description: f.Description,
				})
			}
			p.emit(def.Name, obj, ir.CategoryInput)
		case ast.Object, ast.Interface:
			obj := &ir.Object{Description: def.Description}
			for _, f := range def.Fields {
				if isIntrospectionField(f.Name) {
					continue
				}
				m := p.convertType(f.Type, ctxResponse)
				obj.Properties = append(obj.Properties, ir.Property{
					Name:        f.Name,
					Schema:      m.Collapse(),
					Required:    m.Required(),
					Description: f.Description,
				})
			}
			p.emit(def.Name, obj, ir.CategoryNone)
		}
	}
}

func (p *parser) emit(name string, s ir.Schema, cat ir.Category) {
	p.out = append(p.out, ir.NewNamed(name, s, cat))
}

func fieldDef(def *ast.Definition, name string) *ast.FieldDefinition {
	for _, f := range def.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func isComposite(k ast.DefinitionKind) bool {
	return k == ast.Object || k == ast.Interface || k == ast.Union
}

func isIntrospectionField(name string) bool {
	return len(name) > 2 && name[0] == '_' && name[1] == '_'
}
