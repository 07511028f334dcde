package openapi_test

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/schemac/schemac/ir"
	"github.com/schemac/schemac/openapi"
)

const testSpec = `
openapi: "3.0.3"
info:
  title: Users API
  version: "1.0"
paths:
  /users:
    get:
      operationId: listUsers
      parameters:
        - name: page
          in: query
          required: false
          schema:
            type: integer
        - name: search
          in: query
          required: false
          schema:
            type: string
            nullable: true
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: "#/components/schemas/User"
    post:
      operationId: createUser
      requestBody:
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/NewUser"
      responses:
        "201":
          description: created
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/User"
  /users/{id}:
    get:
      operationId: getUser
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
            format: uuid
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/User"
  /internal/health:
    get:
      operationId: health
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  ok:
                    type: boolean
components:
  schemas:
    Role:
      type: string
      enum: [admin, user]
    MixedFlag:
      enum: ["on", 1]
    User:
      type: object
      required: [id, role]
      properties:
        id:
          type: string
          format: uuid
        role:
          $ref: "#/components/schemas/Role"
        email:
          type: string
          format: email
          nullable: true
        special-name:
          type: string
    NewUser:
      allOf:
        - $ref: "#/components/schemas/User"
        - type: object
          properties:
            password:
              type: string
              minLength: 8
    Value:
      oneOf:
        - type: string
        - type: number
    Labels:
      type: object
      additionalProperties:
        type: string
`

func loadDoc(t *testing.T) *openapi3.T {
	t.Helper()
	doc, err := openapi3.NewLoader().LoadFromData([]byte(testSpec))
	if err != nil {
		t.Fatalf("load spec: %v", err)
	}
	return doc
}

func byName(t *testing.T, res ir.Result, name string) ir.Named {
	t.Helper()
	for _, s := range res.Schemas {
		if s.Name == name {
			return s
		}
	}
	var have []string
	for _, s := range res.Schemas {
		have = append(have, s.Name)
	}
	t.Fatalf("schema %q not produced; have %v", name, have)
	return ir.Named{}
}

func prop(t *testing.T, obj *ir.Object, name string) ir.Property {
	t.Helper()
	for _, p := range obj.Properties {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("property %q not found: %#v", name, obj.Properties)
	return ir.Property{}
}

func TestParse_Components(t *testing.T) {
	res, err := openapi.Parse(loadDoc(t), openapi.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	role := byName(t, res, "Role")
	if role.Category != ir.CategoryComponent {
		t.Fatalf("unexpected category: %v", role.Category)
	}
	e := role.Schema.(*ir.Enum)
	if len(e.Values) != 2 || e.Values[0] != "admin" {
		t.Fatalf("unexpected enum: %#v", e.Values)
	}

	user := byName(t, res, "User")
	obj := user.Schema.(*ir.Object)
	if _, ok := user.Dependencies["Role"]; !ok {
		t.Fatalf("User must depend on Role: %v", user.Dependencies)
	}

	// optional + nullable: union with null, property not required.
	email := prop(t, obj, "email")
	if email.Required {
		t.Fatalf("email is not in required list: %#v", email)
	}
	u, ok := email.Schema.(*ir.Union)
	if !ok || len(u.Members) != 2 || !ir.IsNull(u.Members[1]) {
		t.Fatalf("nullable property must union with null: %#v", email.Schema)
	}
	if s, ok := u.Members[0].(*ir.String); !ok || s.Format != ir.FormatEmail {
		t.Fatalf("format must carry over: %#v", u.Members[0])
	}

	id := prop(t, obj, "id")
	if !id.Required {
		t.Fatalf("required property lost: %#v", id)
	}
	if s, ok := id.Schema.(*ir.String); !ok || s.Format != ir.FormatUUID {
		t.Fatalf("uuid format lost: %#v", id.Schema)
	}
}

func TestParse_CompositionKeywords(t *testing.T) {
	res, err := openapi.Parse(loadDoc(t), openapi.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	newUser := byName(t, res, "NewUser")
	inter, ok := newUser.Schema.(*ir.Intersection)
	if !ok || len(inter.Members) != 2 {
		t.Fatalf("allOf must lower to intersection: %#v", newUser.Schema)
	}
	if r, ok := inter.Members[0].(*ir.Ref); !ok || r.Name != "User" {
		t.Fatalf("allOf member must stay a ref: %#v", inter.Members[0])
	}

	value := byName(t, res, "Value")
	if u, ok := value.Schema.(*ir.Union); !ok || len(u.Members) != 2 {
		t.Fatalf("oneOf must lower to union: %#v", value.Schema)
	}

	mixed := byName(t, res, "MixedFlag")
	u, ok := mixed.Schema.(*ir.Union)
	if !ok || len(u.Members) != 2 {
		t.Fatalf("mixed enum must lower to union of literals: %#v", mixed.Schema)
	}
	if _, ok := u.Members[0].(*ir.Literal); !ok {
		t.Fatalf("mixed enum member must be a literal: %#v", u.Members[0])
	}

	labels := byName(t, res, "Labels")
	if r, ok := labels.Schema.(*ir.Record); !ok {
		t.Fatalf("pure map must lower to record: %#v", labels.Schema)
	} else if _, ok := r.Value.(*ir.String); !ok {
		t.Fatalf("record value type lost: %#v", r.Value)
	}
}

func TestParse_ParametersAreOptionalNotNullish(t *testing.T) {
	res, err := openapi.Parse(loadDoc(t), openapi.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	params := byName(t, res, "ListUsersParams")
	if params.Category != ir.CategoryParams {
		t.Fatalf("unexpected category: %v", params.Category)
	}
	obj := params.Schema.(*ir.Object)

	page := prop(t, obj, "page")
	if page.Required {
		t.Fatalf("required:false parameter must be optional: %#v", page)
	}
	if _, ok := page.Schema.(*ir.Number); !ok {
		t.Fatalf("optional parameter must not accept null: %#v", page.Schema)
	}

	// Separately nullable parameter schema keeps its null union.
	search := prop(t, obj, "search")
	if search.Required {
		t.Fatalf("optional parameter marked required: %#v", search)
	}
	if u, ok := search.Schema.(*ir.Union); !ok || !ir.IsNull(u.Members[1]) {
		t.Fatalf("nullable parameter schema must union with null: %#v", search.Schema)
	}

	get := byName(t, res, "GetUserParams")
	id := prop(t, get.Schema.(*ir.Object), "id")
	if !id.Required {
		t.Fatalf("required path parameter lost: %#v", id)
	}
}

func TestParse_OperationBodies(t *testing.T) {
	res, err := openapi.Parse(loadDoc(t), openapi.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	req := byName(t, res, "CreateUserRequest")
	if req.Category != ir.CategoryInput {
		t.Fatalf("unexpected category: %v", req.Category)
	}
	if r, ok := req.Schema.(*ir.Ref); !ok || r.Name != "NewUser" {
		t.Fatalf("request body must reference its component: %#v", req.Schema)
	}

	resp := byName(t, res, "ListUsersResponse")
	if resp.Category != ir.CategoryResponse {
		t.Fatalf("unexpected category: %v", resp.Category)
	}
	arr, ok := resp.Schema.(*ir.Array)
	if !ok {
		t.Fatalf("unexpected response shape: %#v", resp.Schema)
	}
	if r, ok := arr.Items.(*ir.Ref); !ok || r.Name != "User" {
		t.Fatalf("response items must reference User: %#v", arr.Items)
	}
}

func TestParse_PathFiltering(t *testing.T) {
	doc := loadDoc(t)

	kept := openapi.FilterPaths(doc, nil, []string{"/internal/**"})
	for _, p := range kept {
		if p == "/internal/health" {
			t.Fatalf("excluded path survived: %v", kept)
		}
	}

	only := openapi.FilterPaths(doc, []string{"/users"}, nil)
	if len(only) != 1 || only[0] != "/users" {
		t.Fatalf("include filter failed: %v", only)
	}

	res, err := openapi.Parse(doc, openapi.Options{Exclude: []string{"/internal/**"}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, s := range res.Schemas {
		if s.Name == "HealthResponse" || s.Name == "HealthParams" {
			t.Fatalf("excluded path entered the IR walk: %v", s.Name)
		}
	}
}

func TestParse_TypeArrayNullability(t *testing.T) {
	spec := `
openapi: "3.1.0"
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Profile:
      type: object
      required: [nickname, handle]
      properties:
        nickname:
          type: ["string", "null"]
        handle:
          type: string
        score:
          type: ["integer", "string"]
`
	doc, err := openapi3.NewLoader().LoadFromData([]byte(spec))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	res, err := openapi.Parse(doc, openapi.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	obj := byName(t, res, "Profile").Schema.(*ir.Object)

	// A "null" type member wraps like nullable: true; the property is still
	// required (present but null, not absent).
	nickname := prop(t, obj, "nickname")
	if !nickname.Required {
		t.Fatalf("null type member must not make the property optional: %#v", nickname)
	}
	u, ok := nickname.Schema.(*ir.Union)
	if !ok || len(u.Members) != 2 || !ir.IsNull(u.Members[1]) {
		t.Fatalf("type [string, null] must union with null: %#v", nickname.Schema)
	}
	if _, ok := u.Members[0].(*ir.String); !ok {
		t.Fatalf("core type lost: %#v", u.Members[0])
	}

	// Several non-null type members lower to a plain union.
	score := prop(t, obj, "score")
	su, ok := score.Schema.(*ir.Union)
	if !ok || len(su.Members) != 2 {
		t.Fatalf("type [integer, string] must lower to a union: %#v", score.Schema)
	}
	if n, ok := su.Members[0].(*ir.Number); !ok || !n.Integer {
		t.Fatalf("integer member lost: %#v", su.Members[0])
	}

	if _, ok := prop(t, obj, "handle").Schema.(*ir.String); !ok {
		t.Fatalf("single-type schema changed shape: %#v", prop(t, obj, "handle").Schema)
	}
}

func TestParse_CustomFormatOverride(t *testing.T) {
	spec := `
openapi: "3.0.3"
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Event:
      type: object
      required: [at]
      properties:
        at:
          type: string
          format: DateTime
`
	doc, err := openapi3.NewLoader().LoadFromData([]byte(spec))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	res, err := openapi.Parse(doc, openapi.Options{
		Scalars: map[string]string{"DateTime": "v.pipe(v.string(), v.isoTimestamp())"},
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	at := prop(t, byName(t, res, "Event").Schema.(*ir.Object), "at")
	raw, ok := at.Schema.(*ir.Raw)
	if !ok || raw.Source != "v.pipe(v.string(), v.isoTimestamp())" {
		t.Fatalf("format override must lower to raw: %#v", at.Schema)
	}
}

func TestParse_NilDocument(t *testing.T) {
	if _, err := openapi.Parse(nil, openapi.Options{}); err == nil {
		t.Fatalf("nil document must be fatal")
	}
}
