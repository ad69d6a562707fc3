// Package session holds the per-invocation mutable state of a chat
// session: the query being processed, the turn log, which images have
// already received feedback, and the similarity cutoff. One State is
// created per chat or ask invocation and passed explicitly to the
// components that need it; nothing here survives process exit.
package session

import "fmt"

// Role identifies who produced a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in the chat history log.
type Turn struct {
	Role Role

	// Content is the query text for user turns and the response text
	// for assistant turns.
	Content string

	// ImageCount records how many images accompanied an assistant
	// turn. Zero for user turns.
	ImageCount int

	// UsedSimilarity is true when the assistant turn came from a
	// similarity (embedding) search rather than a direct match.
	UsedSimilarity bool
}

// State is the session state store.
type State struct {
	currentQuery  string
	history       []Turn
	feedbackGiven map[string]struct{}
	threshold     float64
}

// New creates a State with the given starting similarity threshold.
func New(threshold float64) *State {
	return &State{
		feedbackGiven: make(map[string]struct{}),
		threshold:     threshold,
	}
}

// CurrentQuery returns the query most recently submitted.
func (s *State) CurrentQuery() string {
	return s.currentQuery
}

// SetCurrentQuery records the query being processed.
func (s *State) SetCurrentQuery(query string) {
	s.currentQuery = query
}

// AppendTurn adds a turn to the chat history log.
func (s *State) AppendTurn(turn Turn) {
	s.history = append(s.history, turn)
}

// History returns the chat history log in arrival order.
func (s *State) History() []Turn {
	return s.history
}

// Threshold returns the current similarity cutoff.
func (s *State) Threshold() float64 {
	return s.threshold
}

// SetThreshold clamps the given value to [0,1] and stores it.
func (s *State) SetThreshold(value float64) {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	s.threshold = value
}

// feedbackKey builds the composite de-dup key for one (query, image
// URL) pair. Same shape as the original tracking key so a given pair
// rates at most once per session.
func feedbackKey(query, imageURL string) string {
	return fmt.Sprintf("%s-%s", query, imageURL)
}

// FeedbackGiven reports whether feedback was already submitted for
// the (query, imageURL) pair in this session.
func (s *State) FeedbackGiven(query, imageURL string) bool {
	_, ok := s.feedbackGiven[feedbackKey(query, imageURL)]
	return ok
}

// MarkFeedbackGiven records that feedback was submitted for the
// (query, imageURL) pair. Marking happens optimistically at click
// time, before any server acknowledgement.
func (s *State) MarkFeedbackGiven(query, imageURL string) {
	s.feedbackGiven[feedbackKey(query, imageURL)] = struct{}{}
}
