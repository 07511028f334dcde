// Package ir defines the validator-agnostic intermediate representation shared
// by the spec parsers and the code emitters. Parsers (graphql, openapi) lower
// source documents into named IR entries; emitters lower ordered IR entries
// into one validator library's source code. The IR itself carries no behavior
// beyond kind discrimination and a few type-guard predicates.
package ir

// Kind identifies an IR node variant.
type Kind string

const (
	KindString       Kind = "string"
	KindNumber       Kind = "number"
	KindBoolean      Kind = "boolean"
	KindBigInt       Kind = "bigint"
	KindNull         Kind = "null"
	KindUndefined    Kind = "undefined"
	KindUnknown      Kind = "unknown"
	KindNever        Kind = "never"
	KindDate         Kind = "date"
	KindObject       Kind = "object"
	KindArray        Kind = "array"
	KindTuple        Kind = "tuple"
	KindRecord       Kind = "record"
	KindEnum         Kind = "enum"
	KindLiteral      Kind = "literal"
	KindUnion        Kind = "union"
	KindIntersection Kind = "intersection"
	KindRef          Kind = "ref"
	KindRaw          Kind = "raw"
)

// Schema is the root IR node interface. The variant set is closed; emitters
// switch exhaustively over Kind and fall back to a permissive schema (with a
// warning) for anything outside it.
type Schema interface {
	Kind() Kind
	// Doc returns the node's description for doc-comment emission ("" when absent).
	Doc() string
}

// StringFormat tags a string primitive with a well-known format.
type StringFormat string

const (
	FormatNone     StringFormat = ""
	FormatEmail    StringFormat = "email"
	FormatURL      StringFormat = "url"
	FormatUUID     StringFormat = "uuid"
	FormatDateTime StringFormat = "datetime"
	FormatDate     StringFormat = "date"
	FormatTime     StringFormat = "time"
	FormatIPv4     StringFormat = "ipv4"
	FormatIPv6     StringFormat = "ipv6"
)

// String represents a string primitive with optional format and constraints.
type String struct {
	Format      StringFormat
	MinLength   *int
	MaxLength   *int
	Pattern     string
	Description string
}

func (s *String) Kind() Kind  { return KindString }
func (s *String) Doc() string { return s.Description }

// Number represents a number primitive. Integer narrows to whole numbers.
type Number struct {
	Integer     bool
	Min         *float64
	Max         *float64
	Description string
}

func (n *Number) Kind() Kind  { return KindNumber }
func (n *Number) Doc() string { return n.Description }

// Boolean represents a boolean primitive.
type Boolean struct{ Description string }

func (b *Boolean) Kind() Kind  { return KindBoolean }
func (b *Boolean) Doc() string { return b.Description }

// BigInt represents an arbitrary-precision integer.
type BigInt struct{ Description string }

func (b *BigInt) Kind() Kind  { return KindBigInt }
func (b *BigInt) Doc() string { return b.Description }

// Null represents the null value.
type Null struct{ Description string }

func (n *Null) Kind() Kind  { return KindNull }
func (n *Null) Doc() string { return n.Description }

// Undefined represents the undefined value.
type Undefined struct{ Description string }

func (u *Undefined) Kind() Kind  { return KindUndefined }
func (u *Undefined) Doc() string { return u.Description }

// Unknown represents a value with no constraints. Also the permissive fallback
// emitters substitute for unrepresentable nodes.
type Unknown struct{ Description string }

func (u *Unknown) Kind() Kind  { return KindUnknown }
func (u *Unknown) Doc() string { return u.Description }

// Never represents the empty type.
type Never struct{ Description string }

func (n *Never) Kind() Kind  { return KindNever }
func (n *Never) Doc() string { return n.Description }

// Date represents a Date value (as opposed to a date-formatted string).
type Date struct{ Description string }

func (d *Date) Kind() Kind  { return KindDate }
func (d *Date) Doc() string { return d.Description }

// AdditionalPolicy configures how an object treats properties outside its
// declared set.
type AdditionalPolicy int

const (
	// AdditionalDefault leaves unknown-property handling to the target
	// library's default; used when the source spec says nothing.
	AdditionalDefault AdditionalPolicy = iota
	// AdditionalStrict rejects unknown properties.
	AdditionalStrict
	// AdditionalPassthrough lets unknown properties through unvalidated.
	AdditionalPassthrough
	// AdditionalSchema validates unknown properties against Object.Additional.
	AdditionalSchema
)

// Property is one declared object property. Order within Object.Properties is
// the emission order.
type Property struct {
	Name        string
	Schema      Schema
	Required    bool
	Description string
}

// Object represents an object with an ordered property list.
type Object struct {
	Properties []Property
	Policy     AdditionalPolicy
	// Additional is the catch-all schema; set only when Policy is AdditionalSchema.
	Additional  Schema
	Description string
}

func (o *Object) Kind() Kind  { return KindObject }
func (o *Object) Doc() string { return o.Description }

// Array represents a homogeneous list.
type Array struct {
	Items       Schema
	Description string
}

func (a *Array) Kind() Kind  { return KindArray }
func (a *Array) Doc() string { return a.Description }

// Tuple represents a fixed-length ordered list.
type Tuple struct {
	Items       []Schema
	Description string
}

func (t *Tuple) Kind() Kind  { return KindTuple }
func (t *Tuple) Doc() string { return t.Description }

// Record represents a map with uniform key and value schemas.
type Record struct {
	Key         Schema
	Value       Schema
	Description string
}

func (r *Record) Kind() Kind  { return KindRecord }
func (r *Record) Doc() string { return r.Description }

// Enum represents an ordered set of string or number literal values.
// Uniqueness of values is the producer's responsibility.
type Enum struct {
	Values      []any // string | float64 | int members
	Description string
}

func (e *Enum) Kind() Kind  { return KindEnum }
func (e *Enum) Doc() string { return e.Description }

// Literal represents a single fixed value.
type Literal struct {
	Value       any // string | float64 | int | bool
	Description string
}

func (l *Literal) Kind() Kind  { return KindLiteral }
func (l *Literal) Doc() string { return l.Description }

// Union represents an ordered choice. Member order is significant for emitted
// code, not for validation semantics.
type Union struct {
	Members     []Schema
	Description string
}

func (u *Union) Kind() Kind  { return KindUnion }
func (u *Union) Doc() string { return u.Description }

// Intersection represents a conjunction of member schemas. Members are kept
// separate; composition semantics belong to the target validator.
type Intersection struct {
	Members     []Schema
	Description string
}

func (i *Intersection) Kind() Kind  { return KindIntersection }
func (i *Intersection) Doc() string { return i.Description }

// Ref is a by-name reference to another top-level named schema. Emitters
// resolve it textually to the target's schema-variable name; it is never
// inlined, which is what makes recursive and shared types expressible.
type Ref struct {
	Name        string
	Description string
}

func (r *Ref) Kind() Kind  { return KindRef }
func (r *Ref) Doc() string { return r.Description }

// Raw carries opaque validator-specific source text emitted verbatim. It is
// the escape hatch for custom scalar mappings and is the one place where IR
// content is validator-aware.
type Raw struct {
	Source      string
	Description string
}

func (r *Raw) Kind() Kind  { return KindRaw }
func (r *Raw) Doc() string { return r.Description }

// IsNull reports whether s is the null variant.
func IsNull(s Schema) bool { _, ok := s.(*Null); return ok }

// IsUndefined reports whether s is the undefined variant.
func IsUndefined(s Schema) bool { _, ok := s.(*Undefined); return ok }

// IsRef reports whether s is a by-name reference.
func IsRef(s Schema) bool { _, ok := s.(*Ref); return ok }
