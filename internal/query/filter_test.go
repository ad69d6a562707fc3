package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pitchside/cricpix/internal/domain"
)

func scoredImages(scores ...float64) []domain.ImageResult {
	images := make([]domain.ImageResult, len(scores))
	for i, score := range scores {
		images[i] = domain.ImageResult{
			Metadata:        map[string]any{"image_url": "http://img/a.jpg"},
			SimilarityScore: score,
		}
	}
	return images
}

func TestApplyThreshold(t *testing.T) {
	images := scoredImages(0.2, 0.4, 0.6, 0.8)

	assert.Len(t, ApplyThreshold(images, 0.0), 4, "zero threshold keeps everything")
	assert.Len(t, ApplyThreshold(images, 0.5), 2)
	assert.Len(t, ApplyThreshold(images, 0.4), 3, "boundary score is kept")
	assert.Empty(t, ApplyThreshold(images, 1.01), "threshold above 1 filters all")
}

func TestApplyThreshold_Monotonic(t *testing.T) {
	images := scoredImages(0.1, 0.3, 0.5, 0.7, 0.9)

	previous := len(images)
	for threshold := 0.0; threshold <= 1.0; threshold += 0.1 {
		current := len(ApplyThreshold(images, threshold))
		assert.LessOrEqual(t, current, previous, "raising the threshold must never grow the set")
		previous = current
	}
}

func TestApplyThreshold_Idempotent(t *testing.T) {
	images := scoredImages(0.3, 0.5, 0.7)

	first := ApplyThreshold(images, 0.5)
	second := ApplyThreshold(images, 0.5)
	assert.Equal(t, first, second)
}

func facedImages(faces ...any) []domain.ImageResult {
	images := make([]domain.ImageResult, len(faces))
	for i, value := range faces {
		metadata := map[string]any{"image_url": "http://img/a.jpg"}
		if value != nil {
			metadata["no_of_faces"] = value
		}
		images[i] = domain.ImageResult{Metadata: metadata}
	}
	return images
}

func TestFilterMultiPlayer(t *testing.T) {
	images := facedImages(float64(1), float64(2), float64(3), nil)

	filtered, relaxed := FilterMultiPlayer(images)
	assert.False(t, relaxed)
	assert.Len(t, filtered, 2, "keeps only no_of_faces >= 2")
}

func TestFilterMultiPlayer_RelaxesWhenEmpty(t *testing.T) {
	images := facedImages(float64(1), nil)

	filtered, relaxed := FilterMultiPlayer(images)
	assert.True(t, relaxed)
	assert.Equal(t, images, filtered, "original set returned when restriction would show nothing")
}

func TestFilterMultiPlayer_EmptyInput(t *testing.T) {
	filtered, relaxed := FilterMultiPlayer(nil)
	assert.False(t, relaxed)
	assert.Empty(t, filtered)
}

func TestHasMultiFaceImage(t *testing.T) {
	assert.True(t, HasMultiFaceImage(facedImages(float64(1), float64(2))))
	assert.False(t, HasMultiFaceImage(facedImages(float64(1), nil)))
}
