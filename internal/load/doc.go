// Package load provides package loading for the generator.
//
// It uses golang.org/x/tools/go/packages to parse every Go file of the
// requested packages with comments kept, or go/parser for a single file
// when invoked from a go:generate line.
//
// Key types:
//   - Unit: one parsed source file with the context needed to emit a
//     sibling file (package name, imports, build constraint)
package load
