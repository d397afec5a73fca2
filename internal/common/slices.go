package common

import "slices"

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// AppendUnique appends the elements of add that are not already in s,
// keeping first-seen order.
func AppendUnique[S ~[]E, E comparable](s S, add ...E) S {
	for _, e := range add {
		if !slices.Contains(s, e) {
			s = append(s, e)
		}
	}

	return s
}
