package domain

import (
	"strconv"
	"strings"
)

// urlMetadataKeys are the metadata keys that may carry the image URL,
// in priority order. The first present, non-empty value wins.
var urlMetadataKeys = []string{"image_url", "url", "URL"}

// ImageResult is one image record returned by the query endpoint.
// Metadata is an open field set: the backend sends whatever columns
// the indexer produced, so everything beyond the similarity score is
// accessed through typed helpers that tolerate absence.
type ImageResult struct {
	PageContent     string         `json:"page_content,omitempty"`
	Metadata        map[string]any `json:"metadata"`
	SimilarityScore float64        `json:"similarity_score"`
}

// MetaString returns the metadata value for key rendered as a string,
// or "" when the key is missing, nil, or empty.
func (img ImageResult) MetaString(key string) string {
	value, ok := img.Metadata[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode as float64. Render integral values
		// without a fraction so IDs don't show as "42.000000".
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// URL resolves the image URL from the metadata, trying image_url,
// url, and URL in that order. Returns "" when none is present.
func (img ImageResult) URL() string {
	for _, key := range urlMetadataKeys {
		if value := img.MetaString(key); value != "" {
			return value
		}
	}
	return ""
}

// DocumentID returns the backing document identifier, or "" when the
// record has none. Feedback requires it.
func (img ImageResult) DocumentID() string {
	return img.MetaString("document_id")
}

// Caption returns the image caption, or "" when absent.
func (img ImageResult) Caption() string {
	return img.MetaString("caption")
}

// FaceCount parses the no_of_faces metadata field. The backend is
// inconsistent about its type (string or number), so both are
// accepted. ok is false when the field is absent or unparseable.
func (img ImageResult) FaceCount() (count int, ok bool) {
	value, present := img.Metadata["no_of_faces"]
	if !present || value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
