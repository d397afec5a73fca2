// Package emit prints records back to Go source.
//
// The emitter is a structural printer: comments, tags and type expressions
// are written exactly as they were parsed, and no directive is checked for
// meaning. File output is formatted with golang.org/x/tools/imports, which
// also drops the source file's imports the generated types do not use.
package emit
