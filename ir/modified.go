package ir

// Modified is a transient wrapper used only while a parser lowers a source
// type system into IR. GraphQL and OpenAPI express "can be absent" and "can be
// null" as orthogonal axes; Modified carries both until the consuming context
// (a named entry or an object property) is known, at which point Collapse folds
// nullability into the schema itself and Required folds optionality into the
// property. No Modified value survives into a Named entry.
type Modified struct {
	Schema Schema
	// Nullable: present but possibly null (response-position GraphQL fields,
	// OpenAPI nullable).
	Nullable bool
	// Optional: may be absent, never explicitly null (OpenAPI parameters with
	// required: false).
	Optional bool
	// Nullish: may be absent or explicitly null (GraphQL variables and input
	// fields without the non-null wrapper).
	Nullish bool
}

// Collapse resolves the wrapper into a plain schema: nullable becomes a union
// with null, nullish a union with null and undefined. Members are appended to
// an existing union rather than nesting one union inside another.
func (m Modified) Collapse() Schema {
	s := m.Schema
	if !m.Nullable && !m.Nullish {
		return s
	}
	var members []Schema
	if u, ok := s.(*Union); ok {
		members = append(members, u.Members...)
	} else {
		members = append(members, s)
	}
	members = append(members, &Null{})
	if m.Nullish {
		members = append(members, &Undefined{})
	}
	return &Union{Members: members, Description: s.Doc()}
}

// Required reports whether an object property holding this value is required.
func (m Modified) Required() bool { return !m.Optional && !m.Nullish }
