package service

import (
	"regexp"
	"strings"
)

// Characters outside word chars, whitespace and Hangul syllables are
// dropped from slug candidates.
var slugStripPattern = regexp.MustCompile(`[^\w\s가-힣]`)

// slugify normalizes a post title into a URL-safe slug candidate: lowercase,
// disallowed characters stripped, whitespace runs collapsed to single
// hyphens. An empty or fully-stripped title yields an empty candidate; the
// allocator still suffixes it into uniqueness.
func slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStripPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), "-")
}
