package record

import (
	"go/token"
	"slices"
	"strings"
)

// Annotation is a record-level directive comment such as
// "//orm:table users".
type Annotation struct {
	// Category assigned by the classifier. Parsed annotations start as CategoryOther.
	Category Category
	// Name is the directive name, e.g. "orm:derive".
	Name string
	// Args is the text following the name, trimmed.
	Args string
	// Raw is the comment exactly as written, including the leading "//".
	Raw string
	// Markers lists the marker names of a derive list.
	Markers []string
	// Pos is the position of the comment in the source.
	Pos token.Position
}

// Clone returns a deep copy of a.
func (a Annotation) Clone() Annotation {
	a.Markers = slices.Clone(a.Markers)
	return a
}

// Field describes one struct field.
type Field struct {
	// Name is the Go field name. Embedded fields use the name of their type.
	Name string
	// Type is the source text of the field type.
	Type string
	// Exported reports whether the field is visible outside its package.
	Exported bool
	// Embedded reports whether the field is embedded (anonymous).
	Embedded bool
	// Comments holds the raw lines of the field's doc comment in source
	// order: documentation and directives interleaved as written.
	Comments []string
	// Tag is the raw struct tag literal including its quotes, or "".
	Tag string
	// LineComment holds the raw trailing comment lines, if any.
	LineComment []string
	// Pos is the position of the field name (or type, when embedded).
	Pos token.Position
}

// Doc returns the documentation lines of the field comment.
func (f Field) Doc() []string {
	var out []string

	for _, c := range f.Comments {
		if !IsDirective(c) {
			out = append(out, c)
		}
	}

	return out
}

// Directives returns the directive lines of the field comment.
func (f Field) Directives() []string {
	var out []string

	for _, c := range f.Comments {
		if IsDirective(c) {
			out = append(out, c)
		}
	}

	return out
}

// HasDirective reports whether the field carries the directive name.
func (f Field) HasDirective(name string) bool {
	for _, c := range f.Directives() {
		if n, _ := SplitDirective(c); n == name {
			return true
		}
	}

	return false
}

// Clone returns a deep copy of f.
func (f Field) Clone() Field {
	f.Comments = slices.Clone(f.Comments)
	f.LineComment = slices.Clone(f.LineComment)

	return f
}

// Record describes a named struct type.
type Record struct {
	// Name is the type name.
	Name string
	// TypeParams is the source text of the type parameter list
	// (e.g. "[T any]"), or "".
	TypeParams string
	// Exported reports whether the type is visible outside its package.
	Exported bool
	// Doc holds the raw documentation lines of the type's doc comment.
	Doc []string
	// Annotations are the record-level directives in source order.
	Annotations []Annotation
	// Fields in declaration order.
	Fields []Field
	// Pos is the position of the type name.
	Pos token.Position
}

// Clone returns a deep copy of r that shares no memory with it.
func (r *Record) Clone() *Record {
	out := *r
	out.Doc = slices.Clone(r.Doc)

	out.Annotations = nil
	for _, a := range r.Annotations {
		out.Annotations = append(out.Annotations, a.Clone())
	}

	out.Fields = nil
	for _, f := range r.Fields {
		out.Fields = append(out.Fields, f.Clone())
	}

	return &out
}

// FieldNames returns the names of all fields in order.
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		names = append(names, f.Name)
	}

	return names
}

// IsDirective reports whether the raw comment line is a directive.
// It follows go/ast: "//line ", "//extern ", "//export " and
// "//[a-z0-9]+:[a-z0-9]" are directives; they are kept verbatim by gofmt.
func IsDirective(raw string) bool {
	c, ok := strings.CutPrefix(raw, "//")
	if !ok {
		return false
	}

	if strings.HasPrefix(c, "line ") || strings.HasPrefix(c, "extern ") || strings.HasPrefix(c, "export ") {
		return true
	}

	colon := strings.Index(c, ":")
	if colon <= 0 || colon+1 >= len(c) {
		return false
	}

	for i := 0; i <= colon+1; i++ {
		if i == colon {
			continue
		}

		b := c[i]
		if !('a' <= b && b <= 'z' || '0' <= b && b <= '9') {
			return false
		}
	}

	return true
}

// SplitDirective splits a raw directive line into its name and argument
// text: "//orm:table users" yields ("orm:table", "users").
func SplitDirective(raw string) (name, args string) {
	c := strings.TrimPrefix(raw, "//")
	if i := strings.IndexAny(c, " \t"); i >= 0 {
		return c[:i], strings.TrimSpace(c[i+1:])
	}

	return c, ""
}
