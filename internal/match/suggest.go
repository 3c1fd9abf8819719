package match

import (
	"sort"
)

// MinSimilarity is the lowest normalized similarity Suggest reports.
const MinSimilarity = 0.5

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit candidates closest to name, best first.
// Candidates are compared after NormalizeIdent; ties are broken by name so
// the result is deterministic.
func Suggest(name string, candidates []string, limit int) []string {
	norm := NormalizeIdent(name)

	var ranked []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(norm, NormalizeIdent(c))
		if score < MinSimilarity {
			continue
		}

		ranked = append(ranked, scored{name: c, score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}

	return out
}
