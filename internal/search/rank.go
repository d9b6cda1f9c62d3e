package search

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultFrequencyWeight is used when the caller has no configured weight.
const DefaultFrequencyWeight = 0.2

// Candidate is one exercise eligible for ranking.
type Candidate struct {
	ID        string
	Name      string
	Frequency int
}

// Result is a matched candidate with its blended score.
type Result struct {
	Candidate
	Score int
}

// Rank scores every candidate against query, drops non-matches, and sorts
// by score descending, then case-insensitively by localized name.
func Rank(query string, candidates []Candidate, frequencyWeight float64) []Result {
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		score, ok := Score(query, c.Name, c.Frequency, frequencyWeight)
		if !ok {
			continue
		}
		results = append(results, Result{Candidate: c, Score: score})
	}

	coll := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return coll.CompareString(results[i].Name, results[j].Name) < 0
	})
	return results
}
