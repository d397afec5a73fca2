// Package record defines the in-memory model of a struct type definition
// as seen by the generator.
//
// Key types:
//   - Record: a named struct type with its documentation, record-level
//     directives and fields
//   - Field: one struct field with its comments, tag and line comment
//   - Annotation: one record-level directive, tagged with a Category
//
// Comment and tag text is kept exactly as written in the source so that the
// generated type carries it byte for byte.
package record
