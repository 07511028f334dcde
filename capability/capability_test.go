package capability_test

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/schemac/schemac/capability"
)

const capSDL = `
input StringComparison {
  _eq: String
  _in: [String!]
}

input TodoWhere {
  title: StringComparison
}

input TodoOrderBy {
  title: String
}

input PrismaStringFilter {
  equals: String
  contains: String
}

input PrismaTodoWhere {
  title: PrismaStringFilter
}

type Todo {
  id: ID!
  title: String!
}

type TodoConnection {
  nodes: [Todo!]!
}

type Query {
  hasuraTodos(where: TodoWhere, order_by: TodoOrderBy, limit: Int, offset: Int): [Todo!]!
  prismaTodos(where: PrismaTodoWhere, orderBy: String, take: Int, skip: Int): [Todo!]!
  relayTodos(first: Int, after: String): TodoConnection!
  simpleTodos(title: String, done: Boolean): [Todo!]!
  plainTodos: [Todo!]!
}
`

func capSchema(t *testing.T) *ast.Schema {
	t.Helper()
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "cap.graphql", Input: capSDL})
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return schema
}

func TestAnalyzeGraphQLField(t *testing.T) {
	schema := capSchema(t)

	cases := []struct {
		field string
		want  capability.Capabilities
	}{
		{"hasuraTodos", capability.Capabilities{
			Filter:     capability.FilterHasura,
			Sort:       capability.SortHasura,
			Pagination: capability.PaginationOffset,
		}},
		{"prismaTodos", capability.Capabilities{
			Filter:     capability.FilterPrisma,
			Sort:       capability.SortPrisma,
			Pagination: capability.PaginationOffset,
		}},
		{"relayTodos", capability.Capabilities{
			Pagination: capability.PaginationRelay,
		}},
		{"simpleTodos", capability.Capabilities{
			Filter: capability.FilterSimple,
		}},
		{"plainTodos", capability.Capabilities{}},
	}
	for _, tc := range cases {
		got := capability.AnalyzeGraphQLField(schema, tc.field)
		if got != tc.want {
			t.Fatalf("%s: got %+v, want %+v", tc.field, got, tc.want)
		}
	}

	if capability.AnalyzeGraphQLField(schema, "plainTodos").Detected() {
		t.Fatalf("plainTodos must report nothing detected")
	}
	if !capability.AnalyzeGraphQLField(schema, "hasuraTodos").Detected() {
		t.Fatalf("hasuraTodos must report detection")
	}
}

func queryParam(name string) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{Value: &openapi3.Parameter{Name: name, In: openapi3.ParameterInQuery}}
}

func TestAnalyzeOperation(t *testing.T) {
	jsonapi := &openapi3.Operation{Parameters: openapi3.Parameters{
		queryParam("filter[title]"), queryParam("sort"), queryParam("page[number]"), queryParam("page[size]"),
	}}
	got := capability.AnalyzeOperation(jsonapi)
	want := capability.Capabilities{
		Filter:     capability.FilterJSONAPI,
		Sort:       capability.SortJSONAPI,
		Pagination: capability.PaginationPage,
	}
	if got != want {
		t.Fatalf("jsonapi: got %+v, want %+v", got, want)
	}

	rest := &openapi3.Operation{Parameters: openapi3.Parameters{
		queryParam("title"), queryParam("done"), queryParam("limit"), queryParam("offset"),
	}}
	got = capability.AnalyzeOperation(rest)
	want = capability.Capabilities{
		Filter:     capability.FilterSimple,
		Pagination: capability.PaginationOffset,
	}
	if got != want {
		t.Fatalf("rest: got %+v, want %+v", got, want)
	}

	if capability.AnalyzeOperation(&openapi3.Operation{}).Detected() {
		t.Fatalf("empty operation must report nothing detected")
	}
	if capability.AnalyzeOperation(nil).Detected() {
		t.Fatalf("nil operation must report nothing detected")
	}
}
