// Package query implements the client side of the chat query flow:
// text classification heuristics, result filtering, and the two-step
// primary/fallback submission pipeline. Everything here is pure logic
// over response data; transport and presentation live elsewhere.
package query

import "strings"

// The classifier term lists encode product policy, not algorithmic
// truth: they decide when a speculative similarity fallback is worth
// issuing and when a query is asking for multiple players in one
// frame. Substring matching is deliberately crude; the lists are kept
// as data so the tests can pin them down.
var (
	// countingTerms mark a response as a counting answer ("There are
	// 3 images of..."), which is definitionally complete and must not
	// trigger a fallback search.
	countingTerms = []string{"there are", "found", "count", "total of"}

	// multiPlayerTerms mark a query as asking for several players
	// together in the same frame.
	multiPlayerTerms = []string{
		"and", "&", "with", "together",
		"same frame", "single frame", "standing together", "one frame",
	}
)

// noMatchMarker is the phrase the backend uses when a direct search
// legitimately matched nothing. Its presence means "no results" is the
// answer, not a miss to recover from.
const noMatchMarker = "No cricket images matching"

// IsTabularResponse reports whether the response text is a
// pipe-delimited table. Tables are complete answers; no fallback.
func IsTabularResponse(text string) bool {
	return strings.Contains(text, "| ") && strings.Contains(text, " |")
}

// IsCountingResponse reports whether the response text is a counting
// answer.
func IsCountingResponse(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range countingTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// IsNoMatchResponse reports whether the backend explicitly said
// nothing matched.
func IsNoMatchResponse(text string) bool {
	return strings.Contains(text, noMatchMarker)
}

// IsMultiPlayerQuery reports whether the query text asks for multiple
// players in the same frame. Heuristic, not a guarantee: "Kohli and
// Sharma together" is true, "Kohli batting" is false.
func IsMultiPlayerQuery(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range multiPlayerTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
