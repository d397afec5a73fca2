package classify

import (
	"strings"

	"insertable-generator/internal/common"
	"insertable-generator/internal/diagnostic"
	"insertable-generator/internal/record"
)

// Names holds the directive names recognized by the classifier.
type Names struct {
	// Derive is the derive list directive, e.g. "orm:derive".
	Derive string
	// Table is the table binding directive, e.g. "orm:table".
	Table string
}

// Buckets is the classified form of a record's annotation list.
type Buckets struct {
	// Derive is the merged derive list, or nil if the record has none.
	// Its Raw and Args are those of the first derive directive.
	Derive *record.Annotation
	// Table is the table binding, or nil.
	Table *record.Annotation
	// Others are the pass-through annotations in source order.
	Others []record.Annotation

	// sources counts the input annotations merged into Derive.
	sources int
}

// Len returns the number of input annotations the buckets account for.
func (b Buckets) Len() int {
	n := b.sources + len(b.Others)
	if b.Table != nil {
		n++
	}

	return n
}

// Classify sorts annotations into buckets by directive name.
// The input slice is not modified; returned annotations are copies.
func Classify(annotations []record.Annotation, names Names) (Buckets, error) {
	var b Buckets

	for _, a := range annotations {
		a = a.Clone()

		switch a.Name {
		case names.Derive:
			markers, err := ParseMarkers(a)
			if err != nil {
				return Buckets{}, err
			}

			if b.Derive == nil {
				a.Category = record.CategoryDeriveList
				a.Markers = nil
				b.Derive = &a
			}

			b.Derive.Markers = common.AppendUnique(b.Derive.Markers, markers...)
			b.sources++

		case names.Table:
			if b.Table != nil {
				return Buckets{}, diagnostic.Newf(diagnostic.KindMalformedAnnotation, a.Pos,
					"duplicate table binding %q (already bound by %q)", a.Raw, b.Table.Raw)
			}

			if !common.IsQualifiedIdent(a.Args) {
				return Buckets{}, diagnostic.Newf(diagnostic.KindMalformedAnnotation, a.Pos,
					"table binding %q must name exactly one table", a.Raw)
			}

			a.Category = record.CategoryTableBinding
			b.Table = &a

		default:
			a.Category = record.CategoryOther
			b.Others = append(b.Others, a)
		}
	}

	return b, nil
}

// ParseMarkers splits the arguments of a derive directive into marker
// names. Markers are separated by commas and/or whitespace.
func ParseMarkers(a record.Annotation) ([]string, error) {
	fields := strings.FieldsFunc(a.Args, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	if len(fields) == 0 {
		return nil, diagnostic.Newf(diagnostic.KindMalformedAnnotation, a.Pos,
			"derive list %q names no markers", a.Raw)
	}

	for _, f := range fields {
		if !common.IsQualifiedIdent(f) {
			return nil, diagnostic.Newf(diagnostic.KindMalformedAnnotation, a.Pos,
				"derive list %q: %q is not a marker name", a.Raw, f)
		}
	}

	return fields, nil
}
