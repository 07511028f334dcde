// Package capability classifies the filter/sort/pagination idioms a query
// surface exposes, by pattern-matching over its argument or parameter shape.
// The classification feeds predicate push-down code generation: a generic
// query predicate can only be translated into the idiom the backend actually
// speaks (Hasura-style where trees, Prisma-style orderBy, JSON:API query
// params, and so on).
package capability

// Filter identifies the filtering idiom.
type Filter string

const (
	FilterNone    Filter = ""
	FilterHasura  Filter = "hasura"  // where: {field: {_eq: ...}}
	FilterPrisma  Filter = "prisma"  // where: {field: {equals: ...}}
	FilterJSONAPI Filter = "jsonapi" // filter[field]=value
	FilterSimple  Filter = "simple"  // one scalar argument per field
)

// Sort identifies the sorting idiom.
type Sort string

const (
	SortNone    Sort = ""
	SortHasura  Sort = "hasura"  // order_by: {field: asc}
	SortPrisma  Sort = "prisma"  // orderBy: {field: "asc"}
	SortJSONAPI Sort = "jsonapi" // sort=-field
)

// Pagination identifies the pagination idiom.
type Pagination string

const (
	PaginationNone   Pagination = ""
	PaginationRelay  Pagination = "relay"  // first/after cursor pairs
	PaginationPage   Pagination = "page"   // page/pageSize or page/per_page
	PaginationOffset Pagination = "offset" // limit/offset or take/skip
)

// Capabilities is the classification for one query field or operation.
type Capabilities struct {
	Filter     Filter
	Sort       Sort
	Pagination Pagination
}

// Detected reports whether any capability was recognized. On-demand sync
// configured against a surface with none detected is a misconfiguration worth
// warning about.
func (c Capabilities) Detected() bool {
	return c.Filter != FilterNone || c.Sort != SortNone || c.Pagination != PaginationNone
}
