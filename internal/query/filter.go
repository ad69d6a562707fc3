package query

import "github.com/pitchside/cricpix/internal/domain"

// ApplyThreshold returns the images whose similarity score is at
// least threshold. Pure filter over the original result set: calling
// it again with the same inputs yields the same output regardless of
// what was displayed before.
func ApplyThreshold(images []domain.ImageResult, threshold float64) []domain.ImageResult {
	filtered := make([]domain.ImageResult, 0, len(images))
	for _, img := range images {
		if img.SimilarityScore >= threshold {
			filtered = append(filtered, img)
		}
	}
	return filtered
}

// FilterMultiPlayer restricts images to those whose no_of_faces
// metadata parses to at least 2. If the restriction would eliminate
// every candidate, it is relaxed: the original set is returned and
// relaxed is true so the caller can show an informational note
// instead.
func FilterMultiPlayer(images []domain.ImageResult) (filtered []domain.ImageResult, relaxed bool) {
	kept := make([]domain.ImageResult, 0, len(images))
	for _, img := range images {
		if faces, ok := img.FaceCount(); ok && faces >= 2 {
			kept = append(kept, img)
		}
	}
	if len(kept) == 0 && len(images) > 0 {
		return images, true
	}
	return kept, false
}

// HasMultiFaceImage reports whether any image in the set has at least
// two detected faces. Used to annotate the result header.
func HasMultiFaceImage(images []domain.ImageResult) bool {
	for _, img := range images {
		if faces, ok := img.FaceCount(); ok && faces >= 2 {
			return true
		}
	}
	return false
}
