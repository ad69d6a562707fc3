package imagecard

import (
	"sort"
	"strings"

	"github.com/pitchside/cricpix/internal/domain"
)

// importantFields is the fixed priority list shown at the top of a
// card's detail section, in this order.
var importantFields = []string{
	"player_name", "action_name", "event_name", "mood_name",
	"sublocation_name", "timeofday", "shot_type", "focus",
}

// idFieldsWithNames maps raw *_id fields to the *_name field that
// supersedes them. When the name is present, the numeric ID is noise
// and is suppressed from the card.
var idFieldsWithNames = map[string]string{
	"player_id":      "player_name",
	"action_id":      "action_name",
	"event_id":       "event_name",
	"mood_id":        "mood_name",
	"sublocation_id": "sublocation_name",
}

// Field is one labelled metadata value on a card.
type Field struct {
	Key   string
	Label string
	Value string
}

// importantFieldValues returns the present, non-empty important
// fields in priority order.
func importantFieldValues(img domain.ImageResult) []Field {
	fields := make([]Field, 0, len(importantFields))
	for _, key := range importantFields {
		if value := img.MetaString(key); value != "" {
			fields = append(fields, Field{Key: key, Label: fieldLabel(key), Value: value})
		}
	}
	return fields
}

// extraFieldValues returns every other present, non-empty metadata
// field, sorted by key for stable display. Excluded: the embedding
// vector, fields already shown as important, and *_id fields whose
// *_name counterpart is present.
func extraFieldValues(img domain.ImageResult) []Field {
	important := make(map[string]bool, len(importantFields))
	for _, key := range importantFields {
		important[key] = true
	}

	keys := make([]string, 0, len(img.Metadata))
	for key := range img.Metadata {
		if key == "embedding" || important[key] {
			continue
		}
		if nameKey, ok := idFieldsWithNames[key]; ok && img.MetaString(nameKey) != "" {
			continue
		}
		if img.MetaString(key) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, Field{Key: key, Label: fieldLabel(key), Value: img.MetaString(key)})
	}
	return fields
}

// fieldLabel turns a snake_case metadata key into a display label:
// underscores become spaces and each word is capitalized.
func fieldLabel(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
