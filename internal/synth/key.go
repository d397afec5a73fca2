package synth

import (
	"strings"

	"insertable-generator/internal/common"
	"insertable-generator/internal/diagnostic"
	"insertable-generator/internal/match"
	"insertable-generator/internal/record"
)

// SelectKey finds the key field and returns it together with the remaining
// fields in their original order.
//
// A field carrying the key directive wins. Otherwise the field named like
// opts.KeyField (ignoring case) is the key, whatever its type or position.
func SelectKey(rec *record.Record, opts Options) (record.Field, []record.Field, error) {
	idx, err := keyIndex(rec, opts)
	if err != nil {
		return record.Field{}, nil, err.WithRecord(rec.Name)
	}

	rest := make([]record.Field, 0, len(rec.Fields)-1)
	for i, f := range rec.Fields {
		if i != idx {
			rest = append(rest, f.Clone())
		}
	}

	return rec.Fields[idx].Clone(), rest, nil
}

func keyIndex(rec *record.Record, opts Options) (int, *diagnostic.Error) {
	var marked, named []int

	for i, f := range rec.Fields {
		if opts.KeyDirective != "" && f.HasDirective(opts.KeyDirective) {
			marked = append(marked, i)
		}

		if strings.EqualFold(f.Name, opts.KeyField) {
			named = append(named, i)
		}
	}

	switch {
	case common.IsSingle(marked):
		return marked[0], nil

	case len(marked) > 1:
		return -1, diagnostic.Newf(diagnostic.KindMalformedAnnotation, rec.Fields[marked[1]].Pos,
			"%q is set on %d fields; only one key field is allowed",
			"//"+opts.KeyDirective, len(marked)).
			WithField(rec.Fields[marked[1]].Name)

	case common.IsSingle(named):
		return named[0], nil

	case len(named) > 1:
		return -1, diagnostic.Newf(diagnostic.KindAmbiguousKeyField, rec.Fields[named[1]].Pos,
			"fields %s and %s both match key name %q; mark one with //%s",
			rec.Fields[named[0]].Name, rec.Fields[named[1]].Name, opts.KeyField, opts.KeyDirective)

	default:
		return -1, diagnostic.Newf(diagnostic.KindMissingKeyField, rec.Pos,
			"no field named %q", opts.KeyField).
			WithSuggestions(match.KeyCandidates(opts.KeyField, rec.FieldNames())...)
	}
}
