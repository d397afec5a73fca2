package common

import (
	"go/token"
	"strings"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// IsQualifiedIdent reports whether s is a Go identifier or a dot-separated
// chain of identifiers (e.g. "Insertable" or "orm.Insertable").
func IsQualifiedIdent(s string) bool {
	if s == "" {
		return false
	}

	for part := range strings.SplitSeq(s, ".") {
		if !token.IsIdentifier(part) {
			return false
		}
	}

	return true
}
