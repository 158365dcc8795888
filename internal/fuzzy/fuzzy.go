// Package fuzzy ranks labels against a user query for the overlay's
// live search. An exact case-insensitive substring match always outranks
// any subsequence match; the subsequence tier is scored by
// github.com/sahilm/fuzzy, clamped into a band strictly below the
// substring baseline.
package fuzzy

import (
	"sort"
	"strings"

	sahilm "github.com/sahilm/fuzzy"
)

// Scoring constants. The absolute values are tuning knobs; only the
// relative ordering they produce matters.
const (
	substringBaseline = 100
	substringLenBonus = 50

	// sahilm caps its unmatched-leading-char penalty, so lifting raw
	// scores by this offset keeps every subsequence match positive.
	subsequenceFloor = 16
)

// Match pairs an index into the caller's label slice with its score.
type Match struct {
	Index int
	Score int
}

// Find returns matches sorted by descending score, stable for ties. An
// empty or whitespace-only query matches every label in input order.
// Labels whose characters cannot all be found in order are dropped.
func Find(query string, labels []string) []Match {
	matches := make([]Match, 0, len(labels))
	if strings.TrimSpace(query) == "" {
		for i := range labels {
			matches = append(matches, Match{Index: i})
		}
		return matches
	}
	for i, label := range labels {
		if s := Score(label, query); s > 0 {
			matches = append(matches, Match{Index: i, Score: s})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool { return matches[a].Score > matches[b].Score })
	return matches
}

// Score rates how well query matches text; zero means no match.
// Substring matches score a fixed baseline plus a bonus for how much of
// the text the query covers. Anything else goes to the subsequence
// scorer, whose result is confined below the baseline so a substring
// match can never be outranked.
func Score(text, query string) int {
	if strings.TrimSpace(query) == "" {
		return 0
	}
	t := strings.ToLower(text)
	q := strings.ToLower(query)

	if strings.Contains(t, q) {
		return substringBaseline + substringLenBonus*len(q)/len(t)
	}

	ms := sahilm.Find(q, []string{t})
	if len(ms) == 0 {
		return 0
	}
	s := ms[0].Score + subsequenceFloor
	if s < 1 {
		s = 1
	}
	if s >= substringBaseline {
		s = substringBaseline - 1
	}
	return s
}
