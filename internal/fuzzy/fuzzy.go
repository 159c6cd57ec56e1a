// Package fuzzy suggests the closest declared name for a mistyped flag or command.
// Used by cmdtree diagnostics ("did you mean ...").
package fuzzy

import (
	"sort"
	"strings"
)

// Matcher ranks candidate names by edit distance
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a new fuzzy matcher with the given max edit distance
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // Don't suggest for very short inputs
	}
}

// Match represents a fuzzy match result
type Match struct {
	Value    string
	Distance int
}

// FindBest returns the closest candidate, or "" when none is within range
func (m *Matcher) FindBest(input string, candidates []string) string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches returns every candidate within range, closest first.
// Leading flag dashes are ignored when measuring so `-verbose` still finds `--verbose`.
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	word := normalize(input)
	if len(word) < m.minLength {
		return nil
	}

	var matches []Match
	for _, candidate := range candidates {
		other := normalize(candidate)
		if other == word && candidate == input {
			continue
		}

		distance := m.distance(word, other)
		if distance <= m.maxDistance {
			matches = append(matches, Match{Value: candidate, Distance: distance})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		// Same distance: prefer the candidate sharing a longer prefix
		return commonPrefix(word, normalize(matches[i].Value)) > commonPrefix(word, normalize(matches[j].Value))
	})
	return matches
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimLeft(s, "-"))
}

// distance is a two-row Levenshtein with early exit past maxDistance
func (m *Matcher) distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if abs(len(a)-len(b)) > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		curr[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// Suggest finds the best matching name for a mistyped flag or command
func Suggest(input string, names []string, maxDistance int) string {
	return NewMatcher(maxDistance).FindBest(input, names)
}
