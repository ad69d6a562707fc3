package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageURL_KeyPriority(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		expected string
	}{
		{
			name:     "image_url wins over url",
			metadata: map[string]any{"url": "A", "image_url": "B"},
			expected: "B",
		},
		{
			name:     "url wins over URL",
			metadata: map[string]any{"URL": "C", "url": "A"},
			expected: "A",
		},
		{
			name:     "uppercase URL is last resort",
			metadata: map[string]any{"URL": "C"},
			expected: "C",
		},
		{
			name:     "empty values are skipped",
			metadata: map[string]any{"image_url": "", "url": "A"},
			expected: "A",
		},
		{
			name:     "no url keys",
			metadata: map[string]any{"caption": "cover drive"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := ImageResult{Metadata: tt.metadata}
			assert.Equal(t, tt.expected, img.URL())
		})
	}
}

func TestMetaString_NumberRendering(t *testing.T) {
	img := ImageResult{Metadata: map[string]any{
		"player_id": float64(42),
		"exposure":  1.5,
	}}

	assert.Equal(t, "42", img.MetaString("player_id"))
	assert.Equal(t, "1.5", img.MetaString("exposure"))
	assert.Equal(t, "", img.MetaString("missing"))
}

func TestFaceCount(t *testing.T) {
	tests := []struct {
		name  string
		value any
		count int
		ok    bool
	}{
		{"number", float64(3), 3, true},
		{"string", "2", 2, true},
		{"padded string", " 4 ", 4, true},
		{"garbage string", "several", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := ImageResult{Metadata: map[string]any{"no_of_faces": tt.value}}
			count, ok := img.FaceCount()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.count, count)
		})
	}

	img := ImageResult{Metadata: map[string]any{}}
	_, ok := img.FaceCount()
	assert.False(t, ok)
}

func TestFeedbackValidate(t *testing.T) {
	valid := FeedbackRequest{DocID: "doc-1", ImageURL: "http://img/a.jpg", Rating: RatingPositive, Query: "kohli"}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.DocID = ""
	assert.Error(t, missing.Validate())

	badRating := valid
	badRating.Rating = 2
	assert.Error(t, badRating.Validate())
}
