package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insertable-generator/internal/diagnostic"
	"insertable-generator/internal/record"
)

func parseOne(t *testing.T, src string) *record.Record {
	t.Helper()

	recs, err := Source("user.go", []byte(src), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	return recs[0]
}

func TestSource_Shorthand(t *testing.T) {
	rec := parseOne(t, `package model

import "time"

// User is a user.
//
//insertable:new
//orm:derive Debug, Clone, Queryable, AsChangeset
//orm:table users
type User struct {
	// ID of the user.
	ID int64 `+"`db:\"id\"`"+`
	// Name of the user.
	//
	//orm:column name
	Name      string    `+"`db:\"name\" json:\"name\"`"+` // display name
	CreatedAt time.Time
}
`)

	assert.Equal(t, "User", rec.Name)
	assert.True(t, rec.Exported)
	assert.Empty(t, rec.TypeParams)
	assert.Equal(t, []string{"// User is a user."}, rec.Doc)
	assert.Equal(t, 10, rec.Pos.Line)

	require.Len(t, rec.Annotations, 2)
	assert.Equal(t, "orm:derive", rec.Annotations[0].Name)
	assert.Equal(t, "Debug, Clone, Queryable, AsChangeset", rec.Annotations[0].Args)
	assert.Equal(t, "//orm:table users", rec.Annotations[1].Raw)
	assert.Equal(t, 9, rec.Annotations[1].Pos.Line)

	require.Equal(t, []string{"ID", "Name", "CreatedAt"}, rec.FieldNames())

	name := rec.Fields[1]
	assert.Equal(t, "string", name.Type)
	assert.True(t, name.Exported)
	assert.Equal(t, "`db:\"name\" json:\"name\"`", name.Tag)
	assert.Equal(t, []string{"// Name of the user.", "//", "//orm:column name"}, name.Comments)
	assert.Equal(t, []string{"// display name"}, name.LineComment)

	assert.Equal(t, "time.Time", rec.Fields[2].Type)
}

func TestSource_DirectivesAboveTriggerAreOutOfScope(t *testing.T) {
	rec := parseOne(t, `package model

// SuperUser is an admin.
//
//orm:derive Identifiable
//insertable:new
//orm:derive Queryable
type SuperUser struct {
	ID   int
	Name string
}
`)

	require.Len(t, rec.Annotations, 1)
	assert.Equal(t, "//orm:derive Queryable", rec.Annotations[0].Raw)
	assert.Equal(t, []string{"// SuperUser is an admin."}, rec.Doc)
}

func TestSource_WrappingForm(t *testing.T) {
	recs, err := Source("models.go", []byte(`package model

//insertable:new
type (
	// Post is a post.
	//orm:table posts
	Post struct {
		ID    int
		Title string
	}

	Comment struct {
		ID   int
		Body string
	}
)

type Ignored struct {
	ID int
}
`), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Post", recs[0].Name)
	assert.Equal(t, []string{"// Post is a post."}, recs[0].Doc)
	require.Len(t, recs[0].Annotations, 1)
	assert.Equal(t, "orm:table", recs[0].Annotations[0].Name)

	assert.Equal(t, "Comment", recs[1].Name)
	assert.Empty(t, recs[1].Annotations)
}

func TestSource_ShorthandInsideGroup(t *testing.T) {
	recs, err := Source("models.go", []byte(`package model

type (
	//insertable:new
	Tag struct {
		ID   int
		Name string
	}

	Skip struct{ ID int }
)
`), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Tag", recs[0].Name)
}

func TestSource_NoTargets(t *testing.T) {
	recs, err := Source("plain.go", []byte(`package model

type Plain struct{ ID int }
`), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSource_FieldShapes(t *testing.T) {
	rec := parseOne(t, `package model

import "example.com/base"

//insertable:new
type node[K comparable, V any] struct {
	base.Model
	*Audit
	ID         K
	Left, Right *node[K, V] `+"`json:\"-\"`"+`
	value      V
}
`)

	assert.Equal(t, "node", rec.Name)
	assert.False(t, rec.Exported)
	assert.Equal(t, "[K comparable, V any]", rec.TypeParams)
	assert.Equal(t, []string{"Model", "Audit", "ID", "Left", "Right", "value"}, rec.FieldNames())

	assert.True(t, rec.Fields[0].Embedded)
	assert.Equal(t, "base.Model", rec.Fields[0].Type)
	assert.Equal(t, "*Audit", rec.Fields[1].Type)
	assert.Equal(t, "*node[K, V]", rec.Fields[3].Type)
	assert.Equal(t, rec.Fields[3].Tag, rec.Fields[4].Tag)
	assert.False(t, rec.Fields[5].Exported)
}

func TestSource_UnsupportedShape(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"basic type", "//insertable:new\ntype Status int\n"},
		{"alias", "//insertable:new\ntype U = struct{ ID int }\n"},
		{"interface", "//insertable:new\ntype Repo interface{ Get() }\n"},
		{"empty struct", "//insertable:new\ntype Empty struct{}\n"},
		{"func type", "//insertable:new\ntype Fn func(int) int\n"},
		{"function", "//insertable:new\nfunc User() {}\n"},
		{"method", "type T struct{ ID int }\n\n//insertable:new\nfunc (T) User() {}\n"},
		{"var", "//insertable:new\nvar User = struct{ ID int }{}\n"},
		{"grouped const", "const (\n\t//insertable:new\n\tUser = 1\n)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Source("bad.go", []byte("package model\n\n"+tt.src), DefaultOptions())
			require.Error(t, err)
			assert.ErrorIs(t, err, diagnostic.ErrUnsupportedShape)
		})
	}
}

func TestSource_MalformedTag(t *testing.T) {
	_, err := Source("bad.go", []byte("package model\n\n//insertable:new\ntype U struct {\n\tID int\n\tName string `json:name`\n}\n"), DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrMalformedAnnotation)
	assert.Contains(t, err.Error(), "Name")
}

func TestSource_UnknownVerb(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"on type", "//insertable:nwe\ntype User struct {\n\tID   int\n\tName string\n}\n"},
		{"on function", "//insertable:nwe\nfunc User() {}\n"},
		{"on var", "//insertable:nwe\nvar User = 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Source("typo.go", []byte("package model\n\n"+tt.src), DefaultOptions())
			require.Error(t, err)
			assert.ErrorIs(t, err, diagnostic.ErrMalformedAnnotation)
			assert.Contains(t, err.Error(), "did you mean insertable:new?")
		})
	}
}

func TestSource_IgnoresUnmarkedDeclarations(t *testing.T) {
	recs, err := Source("plain.go", []byte(`package model

// Version is set at build time.
//
//go:generate echo hi
var Version = "dev"

//nolint:unused
func helper() {}

type User struct{ ID int }
`), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSource_DirectiveMisplaced(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"key on type", "//insertable:new\n//insertable:key\ntype U struct {\n\tID int\n}\n"},
		{"trigger on field", "//insertable:new\ntype U struct {\n\t//insertable:new\n\tID int\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Source("bad.go", []byte("package model\n\n"+tt.src), DefaultOptions())
			assert.ErrorIs(t, err, diagnostic.ErrMalformedAnnotation)
		})
	}
}

func TestSource_JoinsIndependentFailures(t *testing.T) {
	_, err := Source("multi.go", []byte(`package model

//insertable:new
type A int

//insertable:new
type B struct{}
`), DefaultOptions())
	require.Error(t, err)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	assert.Len(t, joined.Unwrap(), 2)
}

func TestSource_SyntaxError(t *testing.T) {
	_, err := Source("broken.go", []byte("package model\ntype {"), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing broken.go")
}

func TestValidTag(t *testing.T) {
	tests := []struct {
		lit  string
		want bool
	}{
		{"`json:\"name\"`", true},
		{"`db:\"name\" json:\"name,omitempty\"`", true},
		{"\"json:\\\"name\\\"\"", true},
		{"``", true},
		{"`json:name`", false},
		{"`json`", false},
		{"`:\"x\"`", false},
		{"`json:\"unterminated`", false},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			assert.Equal(t, tt.want, validTag(tt.lit))
		})
	}
}

func TestSource_PartialRecords(t *testing.T) {
	recs, err := Source("mixed.go", []byte(`package model

//insertable:new
type Bad int

//insertable:new
type Good struct {
	ID   int
	Name string
}
`), DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrUnsupportedShape)
	require.Len(t, recs, 1)
	assert.Equal(t, "Good", recs[0].Name)
}

func TestSource_WrappedGroupAnnotations(t *testing.T) {
	recs, err := Source("models.go", []byte(`package model

// Models of the shop.
//
//orm:derive Identifiable
//insertable:new
//orm:derive Debug
//orm:table users
type (
	User struct {
		ID   int
		Name string
	}

	// Order is an order.
	//
	//orm:derive Queryable
	//json:schema strict
	Order struct {
		ID    int
		Total int
	}
)
`), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	raws := func(rec *record.Record) []string {
		var out []string
		for _, a := range rec.Annotations {
			out = append(out, a.Raw)
		}

		return out
	}

	assert.Equal(t, []string{"//orm:derive Debug", "//orm:table users"}, raws(recs[0]))
	assert.Equal(t, []string{
		"//orm:derive Debug",
		"//orm:table users",
		"//orm:derive Queryable",
		"//json:schema strict",
	}, raws(recs[1]))
	assert.Equal(t, []string{"// Order is an order."}, recs[1].Doc)
	assert.Empty(t, recs[0].Doc)

	recs[0].Annotations[0].Raw = "changed"
	assert.Equal(t, "//orm:derive Debug", recs[1].Annotations[0].Raw)
}
