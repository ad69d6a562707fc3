package domain

// Feedback ratings. The backend accepts exactly these two values.
const (
	RatingPositive = 1
	RatingNegative = -1
)

// FeedbackRequest is the body of POST /api/feedback. Constructed
// transiently at click time; the only client-side residue is the
// session de-dup key.
type FeedbackRequest struct {
	DocID    string `json:"doc_id"`
	ImageURL string `json:"image_url"`
	Rating   int    `json:"rating"`
	Query    string `json:"query"`
}

// Validate checks the request is complete enough for the backend to
// accept it.
func (r FeedbackRequest) Validate() error {
	if r.DocID == "" {
		return NewDomainError(ErrCodeValidation, "feedback doc_id is required")
	}
	if r.ImageURL == "" {
		return NewDomainError(ErrCodeValidation, "feedback image_url is required")
	}
	if r.Rating != RatingPositive && r.Rating != RatingNegative {
		return NewDomainError(ErrCodeValidation, "feedback rating must be +1 or -1")
	}
	if r.Query == "" {
		return NewDomainError(ErrCodeValidation, "feedback query is required")
	}
	return nil
}

// FeedbackResponse is the body returned by POST /api/feedback.
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
