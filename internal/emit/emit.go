package emit

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"insertable-generator/internal/record"
)

// Import is an import spec copied from the source file.
type Import struct {
	// Name is the explicit package name, or "".
	Name string
	// Path is the unquoted import path.
	Path string
}

// FileConfig describes one generated file.
type FileConfig struct {
	// Filename is the output path; imports.Process uses it to resolve the
	// surrounding module.
	Filename string
	// Package is the package clause name.
	Package string
	// Header is the leading comment text, without "//".
	Header string
	// BuildConstraint is the source file's "//go:build" line, or "".
	BuildConstraint string
	// Imports are the candidate imports; unused ones are removed.
	Imports []Import
	// Records are printed in order.
	Records []*record.Record
}

// Record writes rec as a type declaration with its documentation and
// directives.
func Record(w io.Writer, rec *record.Record) error {
	var b strings.Builder

	for _, line := range rec.Doc {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if len(rec.Doc) > 0 && len(rec.Annotations) > 0 {
		b.WriteString("//\n")
	}

	for _, a := range rec.Annotations {
		b.WriteString(a.Raw)
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "type %s%s struct {\n", rec.Name, rec.TypeParams)

	for _, f := range rec.Fields {
		writeField(&b, f)
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())

	return err
}

func writeField(b *strings.Builder, f record.Field) {
	for _, c := range f.Comments {
		b.WriteByte('\t')
		b.WriteString(c)
		b.WriteByte('\n')
	}

	b.WriteByte('\t')

	if !f.Embedded {
		b.WriteString(f.Name)
		b.WriteByte(' ')
	}

	b.WriteString(f.Type)

	if f.Tag != "" {
		b.WriteByte(' ')
		b.WriteString(f.Tag)
	}

	if len(f.LineComment) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(f.LineComment, " "))
	}

	b.WriteByte('\n')
}

// File renders a complete Go file. When formatting fails the unformatted
// source is returned along with the error.
func File(cfg FileConfig) ([]byte, error) {
	var buf bytes.Buffer

	if cfg.Header != "" {
		fmt.Fprintf(&buf, "// %s\n\n", cfg.Header)
	}

	if cfg.BuildConstraint != "" {
		fmt.Fprintf(&buf, "%s\n\n", cfg.BuildConstraint)
	}

	fmt.Fprintf(&buf, "package %s\n\n", cfg.Package)

	if len(cfg.Imports) > 0 {
		buf.WriteString("import (\n")

		for _, imp := range cfg.Imports {
			buf.WriteByte('\t')

			if imp.Name != "" {
				buf.WriteString(imp.Name)
				buf.WriteByte(' ')
			}

			buf.WriteString(strconv.Quote(imp.Path))
			buf.WriteByte('\n')
		}

		buf.WriteString(")\n\n")
	}

	for i, rec := range cfg.Records {
		if i > 0 {
			buf.WriteByte('\n')
		}

		if err := Record(&buf, rec); err != nil {
			return nil, fmt.Errorf("writing %s: %w", rec.Name, err)
		}
	}

	formatted, err := imports.Process(cfg.Filename, buf.Bytes(), nil)
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting %s: %w", cfg.Filename, err)
	}

	return formatted, nil
}
