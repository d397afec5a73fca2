package match

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-byte insertions, deletions or substitutions turning a into b.
// Only two rows of the matrix are kept.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if a == "" {
		return len(b)
	}

	row := make([]int, len(a)+1)
	for i := range row {
		row[i] = i
	}

	next := make([]int, len(a)+1)

	for j := 1; j <= len(b); j++ {
		next[0] = j

		for i := 1; i <= len(a); i++ {
			sub := row[i-1]
			if a[i-1] != b[j-1] {
				sub++
			}

			next[i] = min(row[i]+1, next[i-1]+1, sub)
		}

		row, next = next, row
	}

	return row[len(a)]
}

// Similarity returns 1 - distance/maxLen over the normalized identifiers,
// so 1.0 means equal after normalization.
func Similarity(a, b string) float64 {
	na, nb := NormalizeIdent(a), NormalizeIdent(b)
	if na == "" && nb == "" {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(na, nb))/float64(max(len(na), len(nb)))
}
