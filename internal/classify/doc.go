// Package classify partitions the record-level directives of a record into
// the buckets the synthesizer works with.
//
// Buckets:
//   - Derive: every derive directive merged into one marker list
//   - Table: the single table binding directive, carried verbatim
//   - Others: everything else, untouched and in source order
//
// Each input annotation lands in exactly one bucket.
package classify
