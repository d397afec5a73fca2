package match

import (
	"slices"
	"sort"
)

// minSimilarity is the lowest Similarity score reported as a suggestion.
const minSimilarity = 0.5

// Closest returns up to limit candidates most similar to name, best first.
// Candidates scoring below minSimilarity are dropped; ties keep input order.
func Closest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var ranked []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := Similarity(name, c); s >= minSimilarity {
			ranked = append(ranked, scored{c, s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	var out []string
	for _, r := range ranked {
		if len(out) == limit {
			break
		}

		out = append(out, r.name)
	}

	return out
}

// KeyCandidates returns the names whose last token equals key, e.g.
// "UserID" and "user_id" for key "id". They are likely keys that do not
// follow the naming convention.
func KeyCandidates(key string, names []string) []string {
	want := NormalizeIdent(key)

	var out []string

	for _, n := range names {
		tokens := TokenizeIdent(n)
		if len(tokens) > 1 && tokens[len(tokens)-1] == want && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}

	return out
}
