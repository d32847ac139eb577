package models

import "strings"

// The four public sections a post can appear under. Categories are a fixed
// enum, not records; anything outside this set is dropped on input.
const (
	CategoryNewsroom          = "newsroom"
	CategoryThoughtPieces     = "thought-pieces"
	CategoryAchievements      = "achievements"
	CategoryAwardsRecognition = "awards-recognition"

	DefaultCategory = CategoryNewsroom
)

// AllCategories returns the enum values in display order.
func AllCategories() []string {
	return []string{
		CategoryNewsroom,
		CategoryThoughtPieces,
		CategoryAchievements,
		CategoryAwardsRecognition,
	}
}

// IsValidCategory reports whether v is one of the known enum values.
func IsValidCategory(v string) bool {
	switch v {
	case CategoryNewsroom, CategoryThoughtPieces, CategoryAchievements, CategoryAwardsRecognition:
		return true
	}
	return false
}

// NormalizeCategories dedupes, drops unknown values, and guarantees a
// non-empty result: an empty or fully-invalid input becomes [newsroom].
func NormalizeCategories(in []string) StringArray {
	seen := make(map[string]bool, len(in))
	out := make(StringArray, 0, len(in))
	for _, raw := range in {
		v := strings.ToLower(strings.TrimSpace(raw))
		if !IsValidCategory(v) || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	if len(out) == 0 {
		return StringArray{DefaultCategory}
	}
	if len(out) > 4 {
		out = out[:4]
	}
	return out
}
