// Package diagnostic provides the error taxonomy of the generator and a
// collector used to report every failing record of a run at once.
//
// Kinds:
//   - UnsupportedShape: the type is not a struct with named fields
//   - MissingKeyField: no field named "id" (or marked as key) exists
//   - AmbiguousKeyField: more than one field qualifies as the key
//   - MalformedAnnotation: a directive or struct tag cannot be parsed
//
// There are no warnings. Any diagnostic halts generation.
package diagnostic
