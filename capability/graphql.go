package capability

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// AnalyzeGraphQLField classifies the capabilities of one query field by
// inspecting its argument names and types. Returns zero-value Capabilities
// when the field does not exist on the schema's query root.
func AnalyzeGraphQLField(schema *ast.Schema, fieldName string) Capabilities {
	if schema == nil || schema.Query == nil {
		return Capabilities{}
	}
	var field *ast.FieldDefinition
	for _, f := range schema.Query.Fields {
		if f.Name == fieldName {
			field = f
			break
		}
	}
	if field == nil {
		return Capabilities{}
	}

	args := map[string]*ast.ArgumentDefinition{}
	for _, a := range field.Arguments {
		args[a.Name] = a
	}

	var c Capabilities
	c.Filter = classifyGraphQLFilter(schema, args)
	c.Sort = classifyGraphQLSort(schema, args)
	c.Pagination = classifyGraphQLPagination(args)
	return c
}

func classifyGraphQLFilter(schema *ast.Schema, args map[string]*ast.ArgumentDefinition) Filter {
	if where, ok := args["where"]; ok {
		// Hasura input types use operator fields like _eq/_in; Prisma uses
		// equals/in/contains.
		if def := schema.Types[where.Type.Name()]; def != nil && def.Kind == ast.InputObject {
			for _, f := range def.Fields {
				if inner := schema.Types[f.Type.Name()]; inner != nil && inner.Kind == ast.InputObject {
					for _, op := range inner.Fields {
						if strings.HasPrefix(op.Name, "_") {
							return FilterHasura
						}
						if op.Name == "equals" || op.Name == "contains" {
							return FilterPrisma
						}
					}
				}
			}
		}
		return FilterPrisma
	}
	if _, ok := args["filter"]; ok {
		return FilterJSONAPI
	}
	// Fall back to simple when any scalar-typed argument exists that is not a
	// known sort/pagination name.
	for name, a := range args {
		if isReservedArg(name) {
			continue
		}
		if def := schema.Types[a.Type.Name()]; def != nil && def.Kind == ast.Scalar {
			return FilterSimple
		}
	}
	return FilterNone
}

func classifyGraphQLSort(schema *ast.Schema, args map[string]*ast.ArgumentDefinition) Sort {
	if _, ok := args["order_by"]; ok {
		return SortHasura
	}
	if _, ok := args["orderBy"]; ok {
		return SortPrisma
	}
	if _, ok := args["sort"]; ok {
		return SortJSONAPI
	}
	return SortNone
}

func classifyGraphQLPagination(args map[string]*ast.ArgumentDefinition) Pagination {
	if _, first := args["first"]; first {
		if _, after := args["after"]; after {
			return PaginationRelay
		}
	}
	if _, page := args["page"]; page {
		if hasAny(args, "pageSize", "perPage", "per_page") {
			return PaginationPage
		}
	}
	if hasAny(args, "limit", "take") && hasAny(args, "offset", "skip") {
		return PaginationOffset
	}
	return PaginationNone
}

func hasAny(args map[string]*ast.ArgumentDefinition, names ...string) bool {
	for _, n := range names {
		if _, ok := args[n]; ok {
			return true
		}
	}
	return false
}

func isReservedArg(name string) bool {
	switch name {
	case "where", "filter", "order_by", "orderBy", "sort",
		"first", "after", "last", "before",
		"page", "pageSize", "perPage", "per_page",
		"limit", "offset", "take", "skip":
		return true
	}
	return false
}
