// Package search scores and ranks exercise names against free-text input,
// blending textual similarity with usage frequency.
package search

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Scoring constants. The substring fast path starts high enough that it
// always outranks subsequence matches; within it, earlier and shorter
// matches win.
const (
	substringBase     = 10000
	substringStartPen = 20

	charBase      = 25
	boundaryBonus = 40
	adjacentBonus = 30
	positionBonus = 30
)

// Score rates candidate against query. ok is false when the candidate does
// not match at all. frequency is how often the exercise was performed;
// frequencyWeight (typically around 0.2) keeps frequency a tiebreaker
// rather than the primary signal.
func Score(query, candidate string, frequency int, frequencyWeight float64) (score int, ok bool) {
	q := Normalize(query)
	if q == "" {
		// Neutral: callers fall back to frequency/alphabetical order.
		return 0, true
	}
	c := Normalize(candidate)

	base, ok := textScore(q, c)
	if !ok {
		return 0, false
	}
	// A weak textual match (negative base) must not turn frequency into a
	// penalty; the bonus only ever lifts.
	bonus := int(math.Floor(float64(base) * frequencyWeight * math.Log2(float64(frequency)+1)))
	if bonus < 0 {
		bonus = 0
	}
	return base + bonus, true
}

func textScore(q, c string) (int, bool) {
	if idx := strings.Index(c, q); idx >= 0 {
		start := utf8.RuneCountInString(c[:idx])
		return substringBase - substringStartPen*start - utf8.RuneCountInString(c), true
	}

	// Every query term must find a subsequence through the candidate or
	// the candidate is rejected outright.
	total := 0
	for _, term := range strings.Fields(q) {
		s, ok := termScore(term, c)
		if !ok {
			return 0, false
		}
		total += s
	}
	return total, true
}

// termScore walks term through c left to right, one character at a time,
// never reusing a position. Matches at word boundaries and tight clusters
// score higher, and earlier matches beat later ones; the spread between term
// and candidate length is charged back as a penalty.
func termScore(term, c string) (int, bool) {
	tr := []rune(term)
	cr := []rune(c)
	score := 0
	pos := 0
	prev := -2
	for _, want := range tr {
		j := -1
		for k := pos; k < len(cr); k++ {
			if cr[k] == want {
				j = k
				break
			}
		}
		if j < 0 {
			return 0, false
		}

		s := charBase
		if j == 0 || cr[j-1] == ' ' {
			s += boundaryBonus
		}
		if j == prev+1 {
			s += adjacentBonus
		}
		if d := positionBonus - j; d > 0 {
			s += d
		}
		score += s
		prev = j
		pos = j + 1
	}
	if p := len(cr) - len(tr); p > 0 {
		score -= p
	}
	return score, true
}
