package capability

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// AnalyzeOperation classifies the capabilities of one OpenAPI operation by
// inspecting its query parameter names.
func AnalyzeOperation(op *openapi3.Operation) Capabilities {
	if op == nil {
		return Capabilities{}
	}
	names := map[string]bool{}
	var plain []string
	for _, pr := range op.Parameters {
		p := pr.Value
		if p == nil || p.In != openapi3.ParameterInQuery {
			continue
		}
		names[p.Name] = true
		if !isReservedParam(p.Name) {
			plain = append(plain, p.Name)
		}
	}

	var c Capabilities
	switch {
	case hasBracketed(names, "filter"):
		c.Filter = FilterJSONAPI
	case names["filter"]:
		c.Filter = FilterJSONAPI
	case len(plain) > 0:
		c.Filter = FilterSimple
	}

	if names["sort"] || hasBracketed(names, "sort") {
		c.Sort = SortJSONAPI
	}

	switch {
	case names["first"] && names["after"]:
		c.Pagination = PaginationRelay
	case hasBracketed(names, "page"):
		c.Pagination = PaginationPage
	case names["page"] && (names["pageSize"] || names["per_page"] || names["perPage"]):
		c.Pagination = PaginationPage
	case (names["limit"] || names["take"]) && (names["offset"] || names["skip"]):
		c.Pagination = PaginationOffset
	}
	return c
}

// hasBracketed reports whether any parameter uses the JSON:API family form,
// e.g. filter[name] or page[size].
func hasBracketed(names map[string]bool, family string) bool {
	prefix := family + "["
	for n := range names {
		if strings.HasPrefix(n, prefix) && strings.HasSuffix(n, "]") {
			return true
		}
	}
	return false
}

func isReservedParam(name string) bool {
	if strings.Contains(name, "[") {
		return true
	}
	switch name {
	case "filter", "sort", "first", "after", "last", "before",
		"page", "pageSize", "perPage", "per_page",
		"limit", "offset", "take", "skip":
		return true
	}
	return false
}
