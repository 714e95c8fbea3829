package textutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SummaryLength is the fixed length of a story summary, in characters
const SummaryLength = 200

// MaxSlugLength matches the width of the slug column
const MaxSlugLength = 255

// fallbackSlug is used when a title has no URL-safe characters at all
const fallbackSlug = "story"

var (
	nonSlugChars = regexp.MustCompile(`[^A-Za-z0-9-]+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a title.
// "Clean Water Project!" → "clean-water-project"
func Slugify(title string) string {
	// Runs of anything outside [A-Za-z0-9-] become a single hyphen
	slug := nonSlugChars.ReplaceAllString(title, "-")
	slug = strings.ToLower(strings.TrimSpace(slug))

	// "clean--water---project" → "clean-water-project"
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	slug = truncate(slug, MaxSlugLength)
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// SuffixSlug disambiguates a taken slug with the unix time of at.
// attempt > 1 adds a counter for collisions within the same second.
// The base is shortened so the result never exceeds MaxSlugLength.
func SuffixSlug(slug string, at time.Time, attempt int) string {
	suffix := fmt.Sprintf("-%d", at.Unix())
	if attempt > 1 {
		suffix += fmt.Sprintf("-%d", attempt)
	}

	base := truncate(slug, MaxSlugLength-len(suffix))
	if base == "" {
		base = fallbackSlug
	}
	return base + suffix
}

// truncate cuts an ASCII slug to at most n bytes without leaving a trailing hyphen
func truncate(slug string, n int) string {
	if len(slug) <= n {
		return slug
	}
	return strings.TrimRight(slug[:n], "-")
}

// Summarize returns the first SummaryLength characters of description.
// No word-boundary handling: callers rely on the fixed-length cut.
func Summarize(description string) string {
	runes := []rune(description)
	if len(runes) <= SummaryLength {
		return description
	}
	return string(runes[:SummaryLength])
}
