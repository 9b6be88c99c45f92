package match

import "sort"

const (
	// DefaultMinScore is the lowest similarity worth suggesting.
	DefaultMinScore = 0.75
	// DefaultMaxSuggestions caps the suggestions per value.
	DefaultMaxSuggestions = 3
)

// Candidate is a value table key that resembles an unmapped value.
type Candidate struct {
	Key   string
	Score float64
}

// Suggest returns up to maxN keys whose similarity to value is at least
// minScore, best first. Ties are broken by key so output is stable.
func Suggest(value string, keys []string, minScore float64, maxN int) []Candidate {
	var out []Candidate

	for _, k := range keys {
		if k == value {
			continue
		}

		score := Similarity(value, k)
		if score >= minScore {
			out = append(out, Candidate{Key: k, Score: score})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}

		return out[i].Key < out[j].Key
	})

	if maxN > 0 && len(out) > maxN {
		out = out[:maxN]
	}

	return out
}
