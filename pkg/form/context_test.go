package form_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldmeta/pkg/form"
	"github.com/goliatone/go-fieldmeta/pkg/model"
	"github.com/goliatone/go-fieldmeta/pkg/schema"
)

func floatPtr(v float64) *float64 { return &v }

func personSchema() *schema.Node {
	return schema.Object(map[string]*schema.Node{
		"name":     schema.String(),
		"nickname": schema.Optional(schema.String()),
		"age": schema.Number().
			Constrain(schema.ConstraintMin, "18").
			Constrain(schema.ConstraintMax, "100"),
	})
}

func TestContext_RequiredAndBounds(t *testing.T) {
	ctx := form.NewBound(personSchema())

	if !ctx.IsRequired("name") {
		t.Fatal("name is required")
	}
	if ctx.IsRequired("nickname") {
		t.Fatal("nickname is optional")
	}

	got := ctx.FieldMetadata("age")
	want := model.FieldMetadata{Required: true, Min: floatPtr(18), Max: floatPtr(100)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestContext_ArrayPaths(t *testing.T) {
	ctx := form.NewBound(schema.Object(map[string]*schema.Node{
		"tags": schema.Array(schema.String()),
	}))

	got := ctx.FieldMetadata("tags.0")
	want := model.FieldMetadata{Required: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	// A non-numeric segment against an array is a kind mismatch and folds
	// into the same unresolved default as a missing path.
	if diff := cmp.Diff(model.Unresolved(), ctx.FieldMetadata("tags.abc")); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestContext_ParentOptionalityDoesNotPropagate(t *testing.T) {
	ctx := form.NewBound(schema.Object(map[string]*schema.Node{
		"address": schema.Optional(schema.Object(map[string]*schema.Node{
			"city": schema.String(),
		})),
	}))

	got := ctx.FieldMetadata("address.city")
	if !got.Required {
		t.Fatal("city judges its own wrappers, not the parent's")
	}
	if ctx.IsRequired("address") {
		t.Fatal("address itself is optional")
	}
}

func TestContext_UnboundDefaults(t *testing.T) {
	ctx := form.New()

	if ctx.IsRequired("anything") {
		t.Fatal("unbound context answers not-required")
	}
	if diff := cmp.Diff(model.Unresolved(), ctx.FieldMetadata("anything")); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if ctx.Bound() {
		t.Fatal("context should report unbound")
	}
}

func TestContext_NilContextDefaults(t *testing.T) {
	var ctx *form.Context
	if ctx.IsRequired("x") {
		t.Fatal("nil context answers not-required")
	}
	if diff := cmp.Diff(model.Unresolved(), ctx.FieldMetadata("x")); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestContext_Determinism(t *testing.T) {
	ctx := form.NewBound(personSchema())

	for _, path := range []string{"name", "nickname", "age", "missing", "age.sub"} {
		first := ctx.FieldMetadata(path)
		second := ctx.FieldMetadata(path)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("repeated query for %q differed (-first +second):\n%s", path, diff)
		}
	}
}

func TestContext_AbsencePropagation(t *testing.T) {
	ctx := form.NewBound(personSchema())

	// Any path extending a non-existent prefix yields the unresolved default.
	for _, path := range []string{"ghost", "ghost.child", "ghost.0.deep"} {
		if diff := cmp.Diff(model.Unresolved(), ctx.FieldMetadata(path)); diff != "" {
			t.Fatalf("mismatch for %q (-want +got):\n%s", path, diff)
		}
	}
}

func TestContext_BindTwiceRejected(t *testing.T) {
	ctx := form.New()
	if err := ctx.Bind(personSchema()); err != nil {
		t.Fatalf("first bind: %v", err)
	}
	if err := ctx.Bind(personSchema()); !errors.Is(err, form.ErrAlreadyBound) {
		t.Fatalf("expected ErrAlreadyBound, got %v", err)
	}
}

func TestContext_ReleaseReturnsToUnbound(t *testing.T) {
	ctx := form.NewBound(personSchema())
	if !ctx.IsRequired("name") {
		t.Fatal("bound context resolves name as required")
	}

	ctx.Release()
	if ctx.Bound() {
		t.Fatal("released context reports unbound")
	}
	if ctx.IsRequired("name") {
		t.Fatal("released context answers conservative defaults")
	}

	// A released context can host a new form.
	if err := ctx.Bind(personSchema()); err != nil {
		t.Fatalf("rebind after release: %v", err)
	}
	if !ctx.IsRequired("name") {
		t.Fatal("rebound context resolves again")
	}
}

func TestContext_SanitizedDescriptions(t *testing.T) {
	root := schema.Object(map[string]*schema.Node{
		"bio": schema.String().Describe(`<script>alert(1)</script>Short bio`),
	})

	plain := form.NewBound(root)
	if got := plain.FieldMetadata("bio").Description; got != "<script>alert(1)</script>Short bio" {
		t.Fatalf("unsanitized context passes descriptions through, got %q", got)
	}

	scrubbed := form.NewBound(root, form.WithSanitizedDescriptions())
	if got := scrubbed.FieldMetadata("bio").Description; got != "Short bio" {
		t.Fatalf("expected markup to be stripped, got %q", got)
	}
}

func TestContext_CachedEnumIsIsolated(t *testing.T) {
	ctx := form.NewBound(schema.Object(map[string]*schema.Node{
		"status": schema.Optional(schema.String().Choices("draft", "published")),
	}))

	first := ctx.FieldMetadata("status")
	first.Enum[0] = "mutated"

	second := ctx.FieldMetadata("status")
	if diff := cmp.Diff([]any{"draft", "published"}, second.Enum); diff != "" {
		t.Fatalf("caller mutation must not poison the cache (-want +got):\n%s", diff)
	}
}
