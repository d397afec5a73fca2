// Package synth derives the insertable record from a parsed record.
//
// The transformation is a pure function of its input:
//
//	in ──classify──> buckets ──SelectKey──> retained fields
//	                    │
//	                    └─TransformDerive─> derive list
//
// The result is assembled as a fresh Record: name = prefix + input name,
// annotations ordered table binding, derive list, others.
package synth
