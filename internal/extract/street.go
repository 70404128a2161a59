package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/routescan/internal/lexicon"
)

// A building number as OCR tends to return it: digits, possibly with l, I,
// o or O standing in for 1 and 0, a stray leading i, and an optional
// trailing letter (12B).
const numberToken = `i?[0-9lIoO]+\p{L}?`

// StreetMatcher finds a street name followed by a building number.
type StreetMatcher struct {
	re *regexp.Regexp
}

// NewStreetMatcher compiles the matcher for the given street-type suffixes.
//
// The pattern is: up to three words, then a word ending in a suffix, then
// whitespace, then a number token optionally followed by -/ and a second
// number token (12-14, 3/5). The suffix word is always the one directly
// before the number, so earlier words that also end in a suffix stay part
// of the street name.
func NewStreetMatcher(suffixes *lexicon.Set) *StreetMatcher {
	words := suffixes.Words()
	sort.SliceStable(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}

	// A colon only joins letters, as in S:t (Sankt); a trailing one ends the word.
	word := `\p{L}(?:[\p{L}.'-]|:\p{L})*`
	pattern := `(?:^|[^\p{L}\p{N}])` +
		`((?i:(?:` + word + `\s+){0,3}(?:` + word + `)?(?:` + strings.Join(words, "|") + `)))` +
		`\s+` +
		`(` + numberToken + `(?:[-/]` + numberToken + `)?)` +
		`(?:[^\p{L}\p{N}]|$)`

	return &StreetMatcher{re: regexp.MustCompile(pattern)}
}

// Match returns the street and raw number of the leftmost match in text.
// There is no search for a better match further along the line.
func (m *StreetMatcher) Match(text string) (street, number string, ok bool) {
	sm := m.re.FindStringSubmatch(text)
	if sm == nil {
		return "", "", false
	}
	return sm[1], sm[2], true
}
