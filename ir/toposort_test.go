package ir_test

import (
	"testing"

	"github.com/schemac/schemac/ir"
)

func named(name string, s ir.Schema) ir.Named {
	return ir.NewNamed(name, s, ir.CategoryNone)
}

func names(schemas []ir.Named) []string {
	out := make([]string, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, s.Name)
	}
	return out
}

func TestSortSchemas_DependencyBeforeDependent(t *testing.T) {
	a := named("A", &ir.Object{Properties: []ir.Property{{Name: "b", Schema: &ir.Ref{Name: "B"}}}})
	b := named("B", &ir.String{})
	got := names(ir.SortSchemas([]ir.Named{a, b}))
	if got[0] != "B" || got[1] != "A" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestSortSchemas_StableForUnrelatedEntries(t *testing.T) {
	in := []ir.Named{
		named("C", &ir.String{}),
		named("A", &ir.String{}),
		named("B", &ir.String{}),
	}
	got := names(ir.SortSchemas(in))
	want := []string{"C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order changed for unrelated entries: %v", got)
		}
	}
}

func TestSortSchemas_Cycle(t *testing.T) {
	a := named("A", &ir.Object{Properties: []ir.Property{{Name: "b", Schema: &ir.Ref{Name: "B"}}}})
	b := named("B", &ir.Object{Properties: []ir.Property{{Name: "a", Schema: &ir.Ref{Name: "A"}}}})
	got := ir.SortSchemas([]ir.Named{a, b})
	if len(got) != 2 {
		t.Fatalf("cycle must not drop or duplicate entries: %v", names(got))
	}
	seen := map[string]int{}
	for _, n := range got {
		seen[n.Name]++
	}
	if seen["A"] != 1 || seen["B"] != 1 {
		t.Fatalf("each entry exactly once: %v", names(got))
	}
}

func TestSortSchemas_DanglingRefIgnored(t *testing.T) {
	a := named("A", &ir.Ref{Name: "NotDefined"})
	got := ir.SortSchemas([]ir.Named{a})
	if len(got) != 1 || got[0].Name != "A" {
		t.Fatalf("dangling ref must not break the sort: %v", names(got))
	}
}

func TestSortSchemas_Chain(t *testing.T) {
	// A -> B -> C, declared in reverse.
	a := named("A", &ir.Array{Items: &ir.Ref{Name: "B"}})
	b := named("B", &ir.Array{Items: &ir.Ref{Name: "C"}})
	c := named("C", &ir.String{})
	got := names(ir.SortSchemas([]ir.Named{a, b, c}))
	want := []string{"C", "B", "A"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: %v", got)
		}
	}
}
