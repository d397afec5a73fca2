package record

//go:generate go tool stringer -type=Category -trimprefix=Category -output=category_string.go

// Category is the classification of a record-level annotation.
type Category int

const (
	// CategoryOther annotations pass through unexamined.
	CategoryOther Category = iota
	// CategoryDeriveList holds a set of derive marker names.
	CategoryDeriveList
	// CategoryTableBinding names the backing table; carried verbatim.
	CategoryTableBinding
)
