// Package imagecard turns raw image results into displayable card
// view-models: resolved URLs with provider fallbacks, prioritized
// metadata fields, and the feedback control state. Building a card
// never fails; missing fields degrade to placeholders.
package imagecard

import (
	"github.com/pitchside/cricpix/internal/domain"
	"github.com/pitchside/cricpix/internal/session"
)

// Placeholder values for absent metadata.
const (
	UnknownPlayer = "Unknown player"
	UnknownEvent  = "Unknown event"
	UnknownAction = "Unknown action"
)

// FeedbackState is the card's feedback control state.
type FeedbackState int

const (
	// FeedbackUnavailable means the card cannot take feedback (no
	// resolvable URL or no document ID).
	FeedbackUnavailable FeedbackState = iota
	// FeedbackAvailable means the rating controls should be offered.
	FeedbackAvailable
	// FeedbackRecorded means this (query, URL) pair already received
	// feedback in this session; show a thanks note instead.
	FeedbackRecorded
)

// Card is the fully resolved view-model for one image result.
type Card struct {
	Index   int
	Caption string

	// URL is the original resolved image URL; empty when the record
	// carries none, in which case the card shows a placeholder.
	URL string

	// DisplayURL is the URL to actually load: the large Drive
	// thumbnail for Drive links, the original URL otherwise.
	DisplayURL string

	// DriveFileID is set when URL is a Google Drive sharing link.
	DriveFileID string

	// LoadChain is the ordered list of candidate URLs a loader should
	// try, one attempt each; exhausting it means the failure
	// placeholder. Non-Drive URLs have a single-entry chain.
	LoadChain []string

	// AlternativeLinks are the named Drive fallback links; nil for
	// non-Drive URLs.
	AlternativeLinks []AlternativeLink

	PlayerName string
	EventName  string
	ActionName string

	SimilarityScore float64

	ImportantFields []Field
	ExtraFields     []Field

	Feedback FeedbackState
	DocID    string
}

// Build resolves one image result into a Card. The session state
// supplies the current query and the feedback de-dup set.
func Build(img domain.ImageResult, index int, state *session.State) Card {
	card := Card{
		Index:           index,
		Caption:         img.Caption(),
		SimilarityScore: img.SimilarityScore,
		DocID:           img.DocumentID(),
		ImportantFields: importantFieldValues(img),
		ExtraFields:     extraFieldValues(img),
		PlayerName:      valueOr(img.MetaString("player_name"), UnknownPlayer),
		EventName:       valueOr(img.MetaString("event_name"), UnknownEvent),
		ActionName:      valueOr(img.MetaString("action_name"), UnknownAction),
	}

	card.URL = img.URL()
	if card.URL != "" {
		card.DisplayURL = card.URL
		card.LoadChain = []string{card.URL}

		if fileID := DriveFileID(card.URL); fileID != "" {
			card.DriveFileID = fileID
			card.DisplayURL = driveLargeThumbnail(fileID)
			card.LoadChain = driveFallbackChain(fileID)
			card.AlternativeLinks = driveAlternativeLinks(fileID, card.URL)
		}
	}

	card.Feedback = feedbackState(card, state)
	return card
}

// feedbackState decides which feedback control the card shows.
// Controls require both a URL and a document ID; a pair that already
// rated this session shows the recorded note.
func feedbackState(card Card, state *session.State) FeedbackState {
	if card.URL == "" || card.DocID == "" {
		return FeedbackUnavailable
	}
	if state.FeedbackGiven(state.CurrentQuery(), card.URL) {
		return FeedbackRecorded
	}
	return FeedbackAvailable
}

func valueOr(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
