// Package main provides the CLI entrypoint for insertable-generator.
//
// insertable-generator reads Go struct types marked with //insertable:new
// and writes a sibling New<Name> type for each of them: the same record
// without its key field, carrying the Insertable marker instead of
// Identifiable so an ORM can use it for inserts.
package main

func main() {
	Execute()
}
