package extract

import (
	"strings"
	"unicode"

	"github.com/routescan/internal/lexicon"
)

// NoiseFilter blanks out whole words found in a noise lexicon.
type NoiseFilter struct {
	words *lexicon.Set
}

// NewNoiseFilter returns a filter over words.
func NewNoiseFilter(words *lexicon.Set) *NoiseFilter {
	return &NoiseFilter{words: words}
}

// Filter replaces every case-insensitive whole-word occurrence of a lexicon
// entry with a single space. A word is a maximal run of letters and digits,
// so an entry never matches inside a longer word. Everything else, including
// punctuation between words, is kept as is.
func (f *NoiseFilter) Filter(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	start := -1
	flush := func(end int) {
		if word := text[start:end]; f.words.Contains(word) {
			b.WriteByte(' ')
		} else {
			b.WriteString(word)
		}
		start = -1
	}

	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			flush(i)
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		flush(len(text))
	}
	return b.String()
}
