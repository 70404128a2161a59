package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Stray "i" read in place of a 1 next to a lone digit.
var (
	reLeadingI  = regexp.MustCompile(`^i(\d)`)
	reTrailingI = regexp.MustCompile(`(\d)i$`)
)

// digitSwaps maps letters OCR commonly returns in place of digits.
var digitSwaps = strings.NewReplacer(
	"l", "1",
	"I", "1",
	"O", "0",
	"o", "0",
)

// CleanLine composes decomposed characters (a + combining ring -> å) and maps
// every Unicode space, including no-break spaces, to an ASCII space.
func CleanLine(s string) string {
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) && r != '\n' && r != '\r' {
			return ' '
		}
		return r
	}, s)
}

// CollapseSpaces trims s and reduces every whitespace run to one space.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// TitleCase upper-cases the first rune and lower-cases the rest.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Number repairs OCR digit/letter confusions in a building number token:
// l and I become 1, O and o become 0, and a stray i next to a leading or
// trailing digit is dropped. It does not check the result is a plausible
// number.
func Number(raw string) string {
	s := digitSwaps.Replace(raw)
	s = reLeadingI.ReplaceAllString(s, "$1")
	s = reTrailingI.ReplaceAllString(s, "$1")
	return s
}
