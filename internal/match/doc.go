// Package match provides identifier normalization and edit-distance ranking
// used to build "did you mean" suggestions in diagnostics.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Closest: ranks candidate names by similarity to a misspelled one
//   - KeyCandidates: finds fields that look like a differently named key
package match
