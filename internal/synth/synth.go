package synth

import (
	"errors"
	"slices"

	"insertable-generator/internal/classify"
	"insertable-generator/internal/diagnostic"
	"insertable-generator/internal/record"
)

// Synthesize builds the insertable record for in. The result shares no
// memory with in; in is never modified.
func Synthesize(in *record.Record, opts Options) (*record.Record, error) {
	buckets, err := classify.Classify(in.Annotations, opts.Names)
	if err != nil {
		var de *diagnostic.Error
		if errors.As(err, &de) {
			de.WithRecord(in.Name)
		}

		return nil, err
	}

	_, fields, err := SelectKey(in, opts)
	if err != nil {
		return nil, err
	}

	derive := TransformDerive(buckets.Derive, opts)

	out := &record.Record{
		Name:       opts.Name(in.Name),
		TypeParams: in.TypeParams,
		Exported:   in.Exported,
		Doc:        slices.Clone(in.Doc),
		Fields:     fields,
		Pos:        in.Pos,
	}

	if buckets.Table != nil {
		out.Annotations = append(out.Annotations, *buckets.Table)
	}

	out.Annotations = append(out.Annotations, derive)
	out.Annotations = append(out.Annotations, buckets.Others...)

	return out, nil
}
