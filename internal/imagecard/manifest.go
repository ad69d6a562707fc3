package imagecard

import (
	"fmt"
	"strings"

	"github.com/pitchside/cricpix/internal/domain"
)

// manifestOfferMinimum is the result count above which a URL manifest
// is offered alongside the cards.
const manifestOfferMinimum = 5

// ShouldOfferManifest reports whether a result set is large enough to
// offer a downloadable URL manifest for.
func ShouldOfferManifest(imageCount int) bool {
	return imageCount > manifestOfferMinimum
}

// Manifest renders a plain-text listing of the result set's URLs,
// one numbered line per image with its player, action, and event.
func Manifest(images []domain.ImageResult) string {
	var b strings.Builder
	b.WriteString("Image URLs:\n\n")
	for i, img := range images {
		url := img.MetaString("url")
		if url == "" {
			url = "No URL available"
		}
		player := valueOr(img.MetaString("player_name"), UnknownPlayer)
		event := valueOr(img.MetaString("event_name"), UnknownEvent)
		action := valueOr(img.MetaString("action_name"), UnknownAction)
		fmt.Fprintf(&b, "%d. %s - %s at %s: %s\n", i+1, player, action, event, url)
	}
	return b.String()
}
