package domain

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	Query string `json:"query"`

	// ForceSimilarity asks the backend to skip direct metadata search
	// and answer from embedding similarity. The client sets it on the
	// automatic fallback pass only.
	ForceSimilarity bool `json:"force_similarity"`
}

// QueryResponse is the body returned by POST /api/query.
type QueryResponse struct {
	Success        bool          `json:"success"`
	ResponseText   string        `json:"response_text"`
	SimilarImages  []ImageResult `json:"similar_images"`
	UsedSimilarity bool          `json:"used_similarity"`

	// Message carries the failure reason when Success is false.
	Message string `json:"message,omitempty"`
}

// QueryHistoryEntry is one item of GET /api/user_queries.
type QueryHistoryEntry struct {
	Query     string `json:"query"`
	Timestamp string `json:"timestamp"`
}

// QueryHistoryResponse is the body returned by GET /api/user_queries.
type QueryHistoryResponse struct {
	Success bool                `json:"success"`
	Queries []QueryHistoryEntry `json:"queries"`
	Message string              `json:"message,omitempty"`
}
