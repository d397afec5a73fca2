package synth

import (
	"slices"
	"strings"

	"insertable-generator/internal/common"
	"insertable-generator/internal/record"
)

// TransformDerive returns the derive list of the output record: identity
// markers removed, the insertable marker appended unless already present.
// A nil list yields a list holding only the insertable marker. Markers are
// written comma separated unless the input separated them by whitespace
// only.
func TransformDerive(derive *record.Annotation, opts Options) record.Annotation {
	out := record.Annotation{
		Category: record.CategoryDeriveList,
		Name:     opts.Names.Derive,
	}

	if derive != nil {
		out.Pos = derive.Pos
		for _, m := range derive.Markers {
			if !slices.Contains(opts.IdentityMarkers, m) {
				out.Markers = append(out.Markers, m)
			}
		}
	}

	out.Markers = common.AppendUnique(out.Markers, opts.InsertableMarker)

	sep := ", "
	if derive != nil && strings.ContainsAny(derive.Args, " \t") && !strings.Contains(derive.Args, ",") {
		sep = " "
	}

	out.Args = strings.Join(out.Markers, sep)
	out.Raw = "//" + out.Name + " " + out.Args

	return out
}
