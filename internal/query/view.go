package query

import (
	"fmt"
	"math"

	"github.com/pitchside/cricpix/internal/domain"
)

// multiPlayerRelaxedNote is shown when the multi-player face
// restriction removed every candidate and was relaxed.
const multiPlayerRelaxedNote = "Here are images related to your query. " +
	"For images with multiple players in the same frame, please try a more specific query."

// ResultView is the displayable form of one assistant message's image
// set. It keeps the post-restriction set around so threshold changes
// always re-filter from the same base, independent of render history.
type ResultView struct {
	Query          string
	Header         string
	Note           string
	Display        []domain.ImageResult
	UsedSimilarity bool

	// EmptyDirective is set instead of Display when the threshold
	// filtered everything out; the caller shows it and skips card
	// rendering.
	EmptyDirective string

	base []domain.ImageResult
}

// NewResultView composes the initial view of an assistant message.
// Multi-player queries restrict the set to images with two or more
// detected faces, relaxing with a note when that would show nothing.
// The threshold is only consulted for the header annotation here; it
// starts filtering on the first WithThreshold call.
func NewResultView(queryText string, msg Message, threshold float64) ResultView {
	view := ResultView{
		Query:          queryText,
		UsedSimilarity: msg.UsedSimilarity,
		base:           msg.Images,
		Display:        msg.Images,
	}

	if IsMultiPlayerQuery(queryText) {
		filtered, relaxed := FilterMultiPlayer(msg.Images)
		view.base = filtered
		view.Display = filtered
		if relaxed {
			view.Note = multiPlayerRelaxedNote
		}
	}

	view.Header = resultHeader(view.Display, msg.UsedSimilarity, threshold)
	return view
}

// WithThreshold re-filters the view's base set against the given
// similarity cutoff. Idempotent: the result depends only on the base
// set and the threshold.
func (v ResultView) WithThreshold(threshold float64) ResultView {
	next := v
	next.Display = ApplyThreshold(v.base, threshold)
	next.EmptyDirective = ""

	if len(next.Display) == 0 {
		next.EmptyDirective = fmt.Sprintf(
			"Please adjust the similarity threshold below %d%% to see more images.",
			thresholdPercent(threshold))
		return next
	}

	next.Header = resultHeader(next.Display, true, threshold)
	return next
}

// Images returns the view's base set (after any multi-player
// restriction, before threshold filtering).
func (v ResultView) Images() []domain.ImageResult {
	return v.base
}

func resultHeader(images []domain.ImageResult, usedSimilarity bool, threshold float64) string {
	header := fmt.Sprintf("Showing All %d Matching Images", len(images))
	if HasMultiFaceImage(images) {
		header += " (With Multiple Faces)"
	}
	if usedSimilarity {
		header += fmt.Sprintf(" (Similarity >= %d%%)", thresholdPercent(threshold))
	}
	return header
}

func thresholdPercent(threshold float64) int {
	return int(math.Round(threshold * 100))
}
