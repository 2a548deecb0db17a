// Package filename provides utilities for sanitizing strings into safe filenames.
package filename

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// invalidCharsRe matches characters not safe for filenames across all major OSes.
var invalidCharsRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// multiDash collapses runs of dashes/underscores.
var multiDash = regexp.MustCompile(`[-_]{2,}`)

// foldDiacritics decomposes characters and strips combining marks, so
// "Café" becomes "Cafe" instead of being mangled by the ASCII pass below.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Sanitize converts an arbitrary string into a filename-safe slug.
// The result contains only ASCII alphanumerics, dashes, underscores, and
// dots. Leading/trailing dashes and dots are stripped. The output is truncated
// to maxLen bytes (0 = no limit, defaults to 50 to keep published names short).
func Sanitize(name string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 50
	}

	s := strings.TrimSpace(name)
	if s == "" {
		return ""
	}

	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}

	// Replace invalid filesystem characters with dashes.
	s = invalidCharsRe.ReplaceAllString(s, "-")

	// Replace whitespace and any remaining non-ASCII with dashes.
	s = strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return '-'
		case r > unicode.MaxASCII:
			return '-'
		}
		return r
	}, s)

	// Collapse consecutive dashes / underscores.
	s = multiDash.ReplaceAllString(s, "-")

	// Strip leading/trailing dashes and dots (avoid hidden files / trailing dots on Windows).
	s = strings.Trim(s, "-.")

	// Truncate to maxLen, cleaning up a trailing partial dash/dot.
	if len(s) > maxLen {
		s = s[:maxLen]
		s = strings.TrimRight(s, "-.")
	}

	return s
}
