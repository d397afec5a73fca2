package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"insertable-generator/internal/common"
)

// Kind classifies a generation failure.
type Kind int

const (
	KindUnsupportedShape Kind = iota + 1
	KindMissingKeyField
	KindAmbiguousKeyField
	KindMalformedAnnotation
)

// Sentinel errors matched by errors.Is against an *Error of the same kind.
var (
	ErrUnsupportedShape    = errors.New("unsupported shape")
	ErrMissingKeyField     = errors.New("missing key field")
	ErrAmbiguousKeyField   = errors.New("ambiguous key field")
	ErrMalformedAnnotation = errors.New("malformed annotation")
)

// String returns the diagnostic code of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnsupportedShape:
		return "unsupported_shape"
	case KindMissingKeyField:
		return "missing_key_field"
	case KindAmbiguousKeyField:
		return "ambiguous_key_field"
	case KindMalformedAnnotation:
		return "malformed_annotation"
	default:
		return common.UnknownStr
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnsupportedShape:
		return ErrUnsupportedShape
	case KindMissingKeyField:
		return ErrMissingKeyField
	case KindAmbiguousKeyField:
		return ErrAmbiguousKeyField
	case KindMalformedAnnotation:
		return ErrMalformedAnnotation
	default:
		return nil
	}
}

// Error is a single diagnostic raised while transforming one record.
type Error struct {
	// Kind of failure.
	Kind Kind
	// Record is the name of the input type (if known).
	Record string
	// Field identifies the field this relates to (if any).
	Field string
	// Pos is the source position of the offending construct.
	Pos token.Position
	// Message is the human-readable description.
	Message string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Newf creates an Error of the given kind.
func Newf(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithRecord sets the record name if it is not set yet and returns e.
func (e *Error) WithRecord(name string) *Error {
	if e.Record == "" {
		e.Record = name
	}

	return e
}

// WithField sets the field name and returns e.
func (e *Error) WithField(name string) *Error {
	e.Field = name
	return e
}

// WithSuggestions appends suggestions and returns e.
func (e *Error) WithSuggestions(s ...string) *Error {
	e.Suggestions = append(e.Suggestions, s...)
	return e
}

// Error returns a formatted diagnostic string.
func (e *Error) Error() string {
	var prefix []string
	if e.Pos.IsValid() {
		prefix = append(prefix, e.Pos.String())
	}

	if e.Record != "" {
		prefix = append(prefix, "["+e.Record+"]")
	}

	if e.Field != "" {
		prefix = append(prefix, e.Field)
	}

	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Is reports whether target is the sentinel error for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}

	return 0
}

// Diagnostics collects failures from independent record transformations.
type Diagnostics struct {
	Errors []error
}

// Add records err. Nil errors are ignored; joined errors are flattened so
// each failure is reported on its own.
func (d *Diagnostics) Add(err error) {
	if err == nil {
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			d.Add(e)
		}

		return
	}

	d.Errors = append(d.Errors, err)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Count returns the number of collected errors of the given kind.
func (d *Diagnostics) Count(kind Kind) int {
	n := 0

	for _, err := range d.Errors {
		if KindOf(err) == kind {
			n++
		}
	}

	return n
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.Error())
	}

	return errors.New(strings.Join(parts, "; "))
}
