package parse

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strconv"
	"strings"

	"insertable-generator/internal/diagnostic"
	"insertable-generator/internal/match"
	"insertable-generator/internal/record"
)

// Options configures directive recognition.
type Options struct {
	// Directive triggers generation for a type or type group.
	Directive string
	// KeyDirective marks a field as the key field explicitly.
	KeyDirective string
}

// DefaultOptions returns the default directive names.
func DefaultOptions() Options {
	return Options{
		Directive:    "insertable:new",
		KeyDirective: "insertable:key",
	}
}

// Source parses one Go source file and returns its selected records.
func Source(filename string, src []byte, opts Options) ([]*record.Record, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	return File(fset, file, opts)
}

// File returns the records selected for generation in file, in declaration
// order. Failures of individual types are joined into one error; the
// records that did parse are returned alongside it.
func File(fset *token.FileSet, file *ast.File, opts Options) ([]*record.Record, error) {
	var (
		recs []*record.Record
		errs []error
	)

	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			errs = append(errs, checkOtherDecl(fset, decl, opts)...)
			continue
		}

		errs = appendErrs(errs, checkNamespace(fset, gd.Doc, opts, false))
		grouped := gd.Lparen.IsValid()
		wrapped := grouped && triggerIndex(gd.Doc, opts.Directive) >= 0

		// Directives below the trigger on a wrapping group lead the
		// annotations of every type in it.
		var shared []record.Annotation
		if wrapped {
			shared = annotations(fset, gd.Doc, opts)
		}

		for _, s := range gd.Specs {
			spec, ok := s.(*ast.TypeSpec)
			if !ok {
				continue
			}

			doc := gd.Doc
			if grouped {
				doc = spec.Doc
				errs = appendErrs(errs, checkNamespace(fset, doc, opts, false))
			}

			if !wrapped && triggerIndex(doc, opts.Directive) < 0 {
				continue
			}

			rec, err := TypeSpec(fset, spec, doc, opts)
			if err != nil {
				errs = append(errs, err)
				continue
			}

			if len(shared) > 0 {
				own := rec.Annotations
				rec.Annotations = make([]record.Annotation, 0, len(shared)+len(own))

				for _, a := range shared {
					rec.Annotations = append(rec.Annotations, a.Clone())
				}

				rec.Annotations = append(rec.Annotations, own...)
			}

			recs = append(recs, rec)
		}
	}

	return recs, errors.Join(errs...)
}

// TypeSpec converts one type declaration into a Record. doc is the comment
// group documenting the type. When doc contains the trigger directive, only
// directives below it become annotations.
func TypeSpec(fset *token.FileSet, spec *ast.TypeSpec, doc *ast.CommentGroup, opts Options) (*record.Record, error) {
	name := spec.Name.Name
	pos := fset.Position(spec.Name.Pos())

	fail := func(err *diagnostic.Error) (*record.Record, error) {
		return nil, err.WithRecord(name)
	}

	if spec.Assign.IsValid() {
		return fail(diagnostic.Newf(diagnostic.KindUnsupportedShape, pos,
			"type alias %s is not a struct definition", name))
	}

	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return fail(diagnostic.Newf(diagnostic.KindUnsupportedShape, pos,
			"type %s is %s, not a struct with named fields", name, exprString(fset, spec.Type)))
	}

	if st.Fields == nil || len(st.Fields.List) == 0 {
		return fail(diagnostic.Newf(diagnostic.KindUnsupportedShape, pos,
			"struct %s has no fields", name))
	}

	rec := &record.Record{
		Name:       name,
		TypeParams: typeParams(fset, spec.TypeParams),
		Exported:   spec.Name.IsExported(),
		Pos:        pos,
	}

	for _, c := range commentList(doc) {
		if !record.IsDirective(c.Text) {
			rec.Doc = append(rec.Doc, c.Text)
		}
	}

	rec.Annotations = annotations(fset, doc, opts)
	rec.Doc = trimBlankTail(rec.Doc)

	for _, f := range st.Fields.List {
		fields, err := fieldsOf(fset, f, opts)
		if err != nil {
			return fail(err)
		}

		rec.Fields = append(rec.Fields, fields...)
	}

	return rec, nil
}

// annotations returns the directives of doc that follow its last trigger
// directive, or all of them when doc has no trigger. The trigger itself is
// never an annotation.
func annotations(fset *token.FileSet, doc *ast.CommentGroup, opts Options) []record.Annotation {
	var out []record.Annotation

	start := triggerIndex(doc, opts.Directive) + 1

	for i, c := range commentList(doc) {
		if i < start || !record.IsDirective(c.Text) {
			continue
		}

		n, args := record.SplitDirective(c.Text)
		if n == opts.Directive {
			continue
		}

		out = append(out, record.Annotation{
			Name: n,
			Args: args,
			Raw:  c.Text,
			Pos:  fset.Position(c.Slash),
		})
	}

	return out
}

// checkOtherDecl reports generator directives on declarations that are not
// type declarations: the trigger there is an unsupported shape, and the
// namespace rules apply as on types.
func checkOtherDecl(fset *token.FileSet, decl ast.Decl, opts Options) []error {
	type target struct {
		doc  *ast.CommentGroup
		name string
		kind string
	}

	var targets []target

	switch d := decl.(type) {
	case *ast.FuncDecl:
		targets = append(targets, target{d.Doc, d.Name.Name, "function"})
	case *ast.GenDecl:
		targets = append(targets, target{d.Doc, declName(d), d.Tok.String()})

		if d.Lparen.IsValid() {
			for _, s := range d.Specs {
				if vs, ok := s.(*ast.ValueSpec); ok && vs.Doc != nil {
					targets = append(targets, target{vs.Doc, vs.Names[0].Name, d.Tok.String()})
				}
			}
		}
	}

	var errs []error

	for _, t := range targets {
		errs = appendErrs(errs, checkNamespace(fset, t.doc, opts, false))

		idx := triggerIndex(t.doc, opts.Directive)
		if idx < 0 {
			continue
		}

		errs = append(errs, diagnostic.Newf(diagnostic.KindUnsupportedShape, fset.Position(t.doc.List[idx].Slash),
			"%q applies to struct type declarations, not a %s declaration", t.doc.List[idx].Text, t.kind).
			WithRecord(t.name))
	}

	return errs
}

func declName(d *ast.GenDecl) string {
	for _, s := range d.Specs {
		switch s := s.(type) {
		case *ast.ValueSpec:
			return s.Names[0].Name
		case *ast.ImportSpec:
			return s.Path.Value
		}
	}

	return d.Tok.String()
}

// fieldsOf converts one field declaration. "A, B T" yields two fields that
// share comments and tag.
func fieldsOf(fset *token.FileSet, f *ast.Field, opts Options) ([]record.Field, *diagnostic.Error) {
	base := record.Field{
		Type:        exprString(fset, f.Type),
		Comments:    texts(f.Doc),
		LineComment: texts(f.Comment),
	}

	if errs := checkNamespace(fset, f.Doc, opts, true); len(errs) > 0 {
		return nil, errs[0].WithField(fieldLabel(f))
	}

	if f.Tag != nil {
		if !validTag(f.Tag.Value) {
			return nil, diagnostic.Newf(diagnostic.KindMalformedAnnotation, fset.Position(f.Tag.Pos()),
				"struct tag %s does not follow the key:\"value\" convention", f.Tag.Value).
				WithField(fieldLabel(f))
		}

		base.Tag = f.Tag.Value
	}

	if len(f.Names) == 0 {
		base.Name = embeddedName(f.Type)
		base.Embedded = true
		base.Exported = token.IsExported(base.Name)
		base.Pos = fset.Position(f.Type.Pos())

		return []record.Field{base}, nil
	}

	out := make([]record.Field, 0, len(f.Names))
	for _, n := range f.Names {
		field := base.Clone()
		field.Name = n.Name
		field.Exported = n.IsExported()
		field.Pos = fset.Position(n.Pos())
		out = append(out, field)
	}

	return out, nil
}

// checkNamespace reports directives in the generator's own namespaces that
// are unknown or used in the wrong place.
func checkNamespace(fset *token.FileSet, doc *ast.CommentGroup, opts Options, onField bool) []*diagnostic.Error {
	known := []string{opts.Directive, opts.KeyDirective}

	var errs []*diagnostic.Error

	for _, c := range commentList(doc) {
		if !record.IsDirective(c.Text) {
			continue
		}

		n, _ := record.SplitDirective(c.Text)
		if !sameNamespace(n, known) {
			continue
		}

		pos := fset.Position(c.Slash)

		switch n {
		case opts.Directive:
			if onField {
				errs = append(errs, diagnostic.Newf(diagnostic.KindMalformedAnnotation, pos,
					"%q applies to type declarations, not fields", c.Text))
			}
		case opts.KeyDirective:
			if !onField {
				errs = append(errs, diagnostic.Newf(diagnostic.KindMalformedAnnotation, pos,
					"%q applies to fields, not type declarations", c.Text))
			}
		default:
			errs = append(errs, diagnostic.Newf(diagnostic.KindMalformedAnnotation, pos,
				"unknown directive %q", c.Text).
				WithSuggestions(match.Closest(n, known, 1)...))
		}
	}

	return errs
}

func appendErrs(errs []error, add []*diagnostic.Error) []error {
	for _, e := range add {
		errs = append(errs, e)
	}

	return errs
}

func sameNamespace(name string, known []string) bool {
	ns, _, _ := strings.Cut(name, ":")
	for _, k := range known {
		if kns, _, _ := strings.Cut(k, ":"); kns == ns {
			return true
		}
	}

	return false
}

// triggerIndex returns the index of the last trigger directive in doc, or -1.
func triggerIndex(doc *ast.CommentGroup, directive string) int {
	idx := -1

	for i, c := range commentList(doc) {
		if !record.IsDirective(c.Text) {
			continue
		}

		if n, _ := record.SplitDirective(c.Text); n == directive {
			idx = i
		}
	}

	return idx
}

func commentList(doc *ast.CommentGroup) []*ast.Comment {
	if doc == nil {
		return nil
	}

	return doc.List
}

func texts(doc *ast.CommentGroup) []string {
	var out []string
	for _, c := range commentList(doc) {
		out = append(out, c.Text)
	}

	return out
}

// trimBlankTail drops trailing empty "//" lines left between documentation
// and directives.
func trimBlankTail(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "//" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

func exprString(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return fmt.Sprintf("%T", expr)
	}

	return buf.String()
}

func typeParams(fset *token.FileSet, list *ast.FieldList) string {
	if list == nil || len(list.List) == 0 {
		return ""
	}

	parts := make([]string, 0, len(list.List))
	for _, f := range list.List {
		names := make([]string, 0, len(f.Names))
		for _, n := range f.Names {
			names = append(names, n.Name)
		}

		parts = append(parts, strings.Join(names, ", ")+" "+exprString(fset, f.Type))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// embeddedName returns the implicit field name of an embedded type:
// "*pkg.Base[T]" is named "Base".
func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	default:
		return ""
	}
}

func fieldLabel(f *ast.Field) string {
	if len(f.Names) == 0 {
		return embeddedName(f.Type)
	}

	return f.Names[0].Name
}

// validTag reports whether the tag literal follows the conventional
// `key:"value" key:"value"` format understood by reflect.StructTag.
func validTag(lit string) bool {
	tag, err := strconv.Unquote(lit)
	if err != nil {
		return false
	}

	for tag != "" {
		tag = strings.TrimLeft(tag, " ")
		if tag == "" {
			break
		}

		i := 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}

		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			return false
		}

		tag = tag[i+1:]

		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}

		if i >= len(tag) {
			return false
		}

		if _, err := strconv.Unquote(tag[:i+1]); err != nil {
			return false
		}

		tag = tag[i+1:]
	}

	return true
}
