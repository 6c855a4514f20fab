// Package slug derives canonical, URL-safe identifiers from article titles.
// The slug doubles as the deduplication key, so the algorithm must stay
// stable across releases.
package slug

import (
	"regexp"
	"strings"
)

const maxLength = 100

var turkish = strings.NewReplacer(
	"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
	"Ç", "c", "Ğ", "g", "İ", "i", "Ö", "o", "Ş", "s", "Ü", "u",
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make transliterates Turkish-specific characters to ASCII, lowercases,
// collapses every run of characters outside [a-z0-9] into a single hyphen,
// trims leading/trailing hyphens and truncates to 100 characters. It is
// deterministic and idempotent over its own output.
func Make(title string) string {
	s := turkish.Replace(title)
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLength {
		// Everything left is ASCII at this point, so a byte cut is safe;
		// re-trim so truncation cannot leave a trailing hyphen.
		s = strings.TrimRight(s[:maxLength], "-")
	}
	return s
}
