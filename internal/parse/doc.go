// Package parse turns annotated Go struct declarations into record.Record
// values.
//
// A type is selected for generation in one of two ways:
//
//	// Shorthand: the trigger directive in the type's own doc comment.
//	//
//	//insertable:new
//	//orm:derive Debug, Queryable
//	//orm:table users
//	type User struct { ... }
//
//	// Wrapping form: the trigger directive on a type group applies to
//	// every type declared inside it.
//	//
//	//insertable:new
//	type (
//		//orm:table users
//		User struct { ... }
//	)
//
// Directives written above the trigger directive belong to other tools and
// are not part of the record. Documentation lines are always kept.
package parse
