package client

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pitchside/cricpix/internal/domain"
)

// Typed wrappers over the backend endpoints. These are the only
// operations the chat surfaces use; everything else in this package
// is command plumbing.

// Query submits a chat query. ForceSimilarity selects the embedding
// search pass; the automatic fallback is the only caller that sets it.
func (c *APIClient) Query(req domain.QueryRequest) (*domain.QueryResponse, error) {
	var resp domain.QueryResponse
	if err := c.Post("/api/query", req, &resp); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &resp, nil
}

// SubmitFeedback sends a +1/-1 rating for an image. A fresh
// idempotency key guards against double submission if the request is
// retried by an intermediary.
func (c *APIClient) SubmitFeedback(req domain.FeedbackRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var resp domain.FeedbackResponse
	opts := RequestOptions{IdempotencyKey: uuid.NewString()}
	if err := c.PostWithOptions("/api/feedback", req, &resp, opts); err != nil {
		return fmt.Errorf("feedback failed: %w", err)
	}
	if !resp.Success {
		if resp.Message != "" {
			return fmt.Errorf("feedback rejected: %s", resp.Message)
		}
		return fmt.Errorf("feedback rejected")
	}
	return nil
}

// UserQueries fetches the account's query history, most recent first.
func (c *APIClient) UserQueries() ([]domain.QueryHistoryEntry, error) {
	var resp domain.QueryHistoryResponse
	if err := c.Get("/api/user_queries", &resp); err != nil {
		return nil, fmt.Errorf("failed to load query history: %w", err)
	}
	if !resp.Success {
		if resp.Message != "" {
			return nil, fmt.Errorf("failed to load query history: %s", resp.Message)
		}
		return nil, fmt.Errorf("failed to load query history")
	}
	return resp.Queries, nil
}

// CurrentUser fetches the authenticated account, or an error when the
// stored session is missing or rejected.
func (c *APIClient) CurrentUser() (*domain.User, error) {
	if !c.HasSession() {
		return nil, domain.ErrNotAuthenticated
	}
	var resp domain.UserResponse
	if err := c.Get("/api/user", &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.User == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return resp.User, nil
}
