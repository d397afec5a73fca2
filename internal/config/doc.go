// Package config loads the optional YAML configuration of the generator.
//
// All keys are optional; missing keys take the defaults shown here:
//
//	version: "1"
//	prefix: New
//	key_field: id
//	directive: insertable:new
//	key_directive: insertable:key
//	derive_directive: orm:derive
//	table_directive: orm:table
//	insertable_marker: Insertable
//	identity_markers: [Identifiable]
//	output_suffix: _insertable.go
package config
