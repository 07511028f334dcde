package emit_test

import (
	"strings"
	"testing"

	"github.com/schemac/schemac/emit"
	"github.com/schemac/schemac/ir"
)

func mustEmitter(t *testing.T, name string) emit.Emitter {
	t.Helper()
	e, err := emit.Lookup(name)
	if err != nil {
		t.Fatalf("lookup %s: %v", name, err)
	}
	return e
}

func TestZod_EnumScenario(t *testing.T) {
	status := ir.NewNamed("Status", &ir.Enum{Values: []any{"active", "inactive"}}, ir.CategoryEnum)

	z := mustEmitter(t, "zod").Emit([]ir.Named{status}, emit.Options{})
	if !strings.Contains(z.Content, `export const statusSchema = z.enum(["active", "inactive"]);`) {
		t.Fatalf("zod enum missing:\n%s", z.Content)
	}
	if !strings.Contains(z.Content, "export type Status = z.infer<typeof statusSchema>;") {
		t.Fatalf("zod type alias missing:\n%s", z.Content)
	}

	v := mustEmitter(t, "valibot").Emit([]ir.Named{status}, emit.Options{})
	if !strings.Contains(v.Content, `v.picklist(["active", "inactive"])`) {
		t.Fatalf("valibot enum missing:\n%s", v.Content)
	}

	a := mustEmitter(t, "arktype").Emit([]ir.Named{status}, emit.Options{})
	if !strings.Contains(a.Content, `type.enumerated("active", "inactive")`) {
		t.Fatalf("arktype enum missing:\n%s", a.Content)
	}
}

func TestZod_NullishProperty(t *testing.T) {
	// {id: required string, email: optional string} where "optional" came from a
	// GraphQL input position, i.e. nullish.
	email := ir.Modified{Schema: &ir.String{}, Nullish: true}
	user := ir.NewNamed("User", &ir.Object{Properties: []ir.Property{
		{Name: "id", Schema: &ir.String{}, Required: true},
		{Name: "email", Schema: email.Collapse(), Required: email.Required()},
	}}, ir.CategoryInput)

	res := mustEmitter(t, "zod").Emit([]ir.Named{user}, emit.Options{})
	if !strings.Contains(res.Content, "email: z.string().nullish(),") {
		t.Fatalf("nullish property line missing:\n%s", res.Content)
	}
	if !strings.Contains(res.Content, "id: z.string(),") {
		t.Fatalf("required property line missing:\n%s", res.Content)
	}
}

func TestZod_OptionalWithoutNull(t *testing.T) {
	// An OpenAPI query parameter with required:false and no nullable must stay
	// optional-only.
	page := ir.Modified{Schema: &ir.Number{Integer: true}, Optional: true}
	params := ir.NewNamed("ListUsersParams", &ir.Object{Properties: []ir.Property{
		{Name: "page", Schema: page.Collapse(), Required: page.Required()},
	}}, ir.CategoryParams)

	res := mustEmitter(t, "zod").Emit([]ir.Named{params}, emit.Options{})
	if !strings.Contains(res.Content, "page: z.number().int().optional(),") {
		t.Fatalf("optional property line missing:\n%s", res.Content)
	}
	if strings.Contains(res.Content, "nullable") || strings.Contains(res.Content, "nullish") {
		t.Fatalf("optional-only parameter must not accept null:\n%s", res.Content)
	}
}

func TestQuoting_SpecialNameQuotedExactlyOnce(t *testing.T) {
	obj := ir.NewNamed("Odd", &ir.Object{Properties: []ir.Property{
		{Name: "special-name", Schema: &ir.String{}, Required: true},
	}}, ir.CategoryComponent)

	for _, lib := range emit.Libraries() {
		res := mustEmitter(t, lib).Emit([]ir.Named{obj}, emit.Options{})
		if c := strings.Count(res.Content, `"special-name"`); c != 1 {
			t.Fatalf("%s: quoted key count = %d, want 1:\n%s", lib, c, res.Content)
		}
		if strings.Contains(res.Content, `""special-name""`) || strings.Contains(res.Content, `"\"special-name\""`) {
			t.Fatalf("%s: doubly-quoted key:\n%s", lib, res.Content)
		}
	}
}

func TestZod_RefAndForwardReferenceWarning(t *testing.T) {
	a := ir.NewNamed("A", &ir.Object{Properties: []ir.Property{
		{Name: "b", Schema: &ir.Ref{Name: "B"}, Required: true},
	}}, ir.CategoryComponent)
	b := ir.NewNamed("B", &ir.Object{Properties: []ir.Property{
		{Name: "a", Schema: &ir.Ref{Name: "A"}, Required: true},
	}}, ir.CategoryComponent)

	// Acyclic, sorted input: no warnings, bare identifier reference.
	ordered := []ir.Named{ir.NewNamed("B", &ir.String{}, ir.CategoryComponent), a}
	res := mustEmitter(t, "zod").Emit(ordered, emit.Options{})
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	if !strings.Contains(res.Content, "b: bSchema,") {
		t.Fatalf("ref must resolve to the schema variable:\n%s", res.Content)
	}

	// A true cycle still emits both entries but surfaces the forward reference.
	res = mustEmitter(t, "zod").Emit(ir.SortSchemas([]ir.Named{a, b}), emit.Options{})
	if !strings.Contains(res.Content, "export const aSchema") || !strings.Contains(res.Content, "export const bSchema") {
		t.Fatalf("cycle must not drop entries:\n%s", res.Content)
	}
	if len(res.Warnings) == 0 {
		t.Fatalf("expected forward-reference warning for cycle")
	}
}

func TestEmit_Idempotent(t *testing.T) {
	schemas := []ir.Named{
		ir.NewNamed("Role", &ir.Enum{Values: []any{"admin", "user"}}, ir.CategoryEnum),
		ir.NewNamed("User", &ir.Object{Properties: []ir.Property{
			{Name: "id", Schema: &ir.String{Format: ir.FormatUUID}, Required: true},
			{Name: "role", Schema: &ir.Ref{Name: "Role"}, Required: true},
			{Name: "tags", Schema: &ir.Array{Items: &ir.String{}}},
		}}, ir.CategoryComponent),
	}
	for _, lib := range emit.Libraries() {
		e := mustEmitter(t, lib)
		first := e.Emit(schemas, emit.Options{})
		second := e.Emit(schemas, emit.Options{})
		if first.Content != second.Content {
			t.Fatalf("%s: emission is not deterministic", lib)
		}
	}
}

func TestLookup_UnknownLibrary(t *testing.T) {
	_, err := emit.Lookup("yup")
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, lib := range []string{"arktype", "effect", "valibot", "zod"} {
		if !strings.Contains(err.Error(), lib) {
			t.Fatalf("error must enumerate %q: %v", lib, err)
		}
	}
}
