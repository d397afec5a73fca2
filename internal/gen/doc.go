// Package gen runs the generation pipeline over loaded source files.
//
// For every file it parses the records selected for generation,
// synthesizes each one independently (in parallel, bounded by Workers),
// and emits one sibling file holding the generated types in source order.
//
// Generation is all or nothing: any diagnostic aborts the run and no file
// is returned. Check runs the same pipeline and reports every diagnostic.
package gen
