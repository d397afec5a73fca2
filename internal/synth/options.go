package synth

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"insertable-generator/internal/classify"
)

// Options configures the synthesizer.
type Options struct {
	// Prefix is prepended to the input type name.
	Prefix string
	// KeyField is the conventional name of the key field, compared
	// case-insensitively.
	KeyField string
	// KeyDirective marks a field as the key explicitly.
	KeyDirective string
	// Names are the directives recognized by the classifier.
	Names classify.Names
	// InsertableMarker is added to the derive list.
	InsertableMarker string
	// IdentityMarkers are removed from the derive list because they need
	// the key field.
	IdentityMarkers []string
}

// DefaultOptions returns the default synthesizer options.
func DefaultOptions() Options {
	return Options{
		Prefix:       "New",
		KeyField:     "id",
		KeyDirective: "insertable:key",
		Names: classify.Names{
			Derive: "orm:derive",
			Table:  "orm:table",
		},
		InsertableMarker: "Insertable",
		IdentityMarkers:  []string{"Identifiable"},
	}
}

// Name returns the output type name for the input type name.
// Exported names get the prefix as configured ("User" -> "NewUser");
// unexported names keep their visibility ("user" -> "newUser").
func (o Options) Name(in string) string {
	if in == "" || o.Prefix == "" {
		return o.Prefix + in
	}

	r, _ := utf8.DecodeRuneInString(in)
	if unicode.IsUpper(r) {
		return o.Prefix + in
	}

	return lowerFirst(o.Prefix) + upperFirst(in)
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[n:]
}
