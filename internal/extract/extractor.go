// Package extract pulls "Street Number, City" addresses out of noisy OCR
// transcripts of delivery manifests.
//
// Each line goes through four stages: the line is cut at the first known
// city, noise words are blanked out, a street-suffix word followed by a
// building number is located, and the number is repaired for common OCR
// confusions. Results are composed and deduplicated across the batch. Lines
// that yield nothing are skipped; the pipeline never fails.
package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/routescan/internal/debug"
	"github.com/routescan/internal/lexicon"
	"github.com/routescan/internal/normalize"
)

// Lines this short (after trimming) are page numbers and stray marks.
const minLineLength = 5

// Reason explains the outcome for one line in Explain.
type Reason string

const (
	ReasonMatched   Reason = "matched"
	ReasonDuplicate Reason = "duplicate"
	ReasonEmpty     Reason = "empty"
	ReasonTooShort  Reason = "too_short"
	ReasonNoMatch   Reason = "no_street_match"
)

// LineResult is the per-line trace returned by Explain.
type LineResult struct {
	LineNo    int        `json:"line"`
	Raw       string     `json:"raw"`
	Reason    Reason     `json:"reason"`
	Candidate *Candidate `json:"candidate,omitempty"`
	Address   string     `json:"address,omitempty"`
}

// Extractor runs the pipeline. It holds only read-only state and is safe for
// concurrent use.
type Extractor struct {
	cities *CitySplitter
	noise  *NoiseFilter
	street *StreetMatcher
	debug  bool
}

type options struct {
	cities   []string
	fallback string
	noise    *lexicon.Set
	suffixes *lexicon.Set
	debug    bool
}

// Option customises an Extractor.
type Option func(*options)

// WithCities replaces the city list. An empty fallback keeps the default.
func WithCities(cities []string, fallback string) Option {
	return func(o *options) {
		o.cities = append([]string(nil), cities...)
		if fallback != "" {
			o.fallback = fallback
		}
	}
}

// WithNoise replaces the noise lexicon.
func WithNoise(words *lexicon.Set) Option {
	return func(o *options) { o.noise = words }
}

// WithSuffixes replaces the street-suffix lexicon.
func WithSuffixes(suffixes *lexicon.Set) Option {
	return func(o *options) { o.suffixes = suffixes }
}

// WithDebug turns stage tracing on or off.
func WithDebug(enabled bool) Option {
	return func(o *options) { o.debug = enabled }
}

// New builds an Extractor over the compiled-in lexicons unless overridden.
func New(opts ...Option) *Extractor {
	o := options{
		cities:   lexicon.Cities().Words(),
		fallback: lexicon.FallbackCity,
		noise:    lexicon.Noise(),
		suffixes: lexicon.StreetSuffixes(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Extractor{
		cities: NewCitySplitter(o.cities, o.fallback),
		noise:  NewNoiseFilter(o.noise),
		street: NewStreetMatcher(o.suffixes),
		debug:  o.debug,
	}
}

var defaultExtractor = New()

// ExtractAddresses runs the default Extractor over rawText.
func ExtractAddresses(rawText string) []string {
	return defaultExtractor.ExtractAddresses(rawText)
}

// ExtractLine runs one line through the city, noise, street and number
// stages. ok is false when no street and number were found.
func (e *Extractor) ExtractLine(line string) (c Candidate, ok bool) {
	before, city := e.cities.Split(line)
	debug.Stage(e.debug, "city", "%q -> %q + %q", line, before, city)

	filtered := e.noise.Filter(before)
	debug.Stage(e.debug, "noise", "%q", filtered)

	street, number, ok := e.street.Match(filtered)
	if !ok {
		debug.Stage(e.debug, "street", "no match")
		return Candidate{}, false
	}
	debug.Stage(e.debug, "street", "street=%q number=%q", street, number)

	return Candidate{
		Street:    street,
		Number:    normalize.Number(number),
		RawNumber: number,
		City:      city,
	}, true
}

// ExtractAddresses returns the composed addresses found in rawText in line
// order, without repeats.
func (e *Extractor) ExtractAddresses(rawText string) []string {
	defer debug.Timing(e.debug, "extract")()

	var composed []string
	for _, line := range SplitLines(normalize.CleanLine(rawText)) {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= minLineLength {
			continue
		}
		if c, ok := e.ExtractLine(line); ok {
			composed = append(composed, Compose(c))
		}
	}
	return Dedupe(composed)
}

// Explain reports what happened to every line of rawText. The addresses of
// entries with ReasonMatched are exactly what ExtractAddresses returns.
func (e *Extractor) Explain(rawText string) []LineResult {
	lines := SplitLines(normalize.CleanLine(rawText))
	results := make([]LineResult, 0, len(lines))
	seen := make(map[string]struct{})

	for i, raw := range lines {
		res := LineResult{LineNo: i + 1, Raw: raw}
		line := strings.TrimSpace(raw)

		switch {
		case line == "":
			res.Reason = ReasonEmpty
		case utf8.RuneCountInString(line) <= minLineLength:
			res.Reason = ReasonTooShort
		default:
			c, ok := e.ExtractLine(line)
			if !ok {
				res.Reason = ReasonNoMatch
				break
			}
			res.Candidate = &c
			res.Address = Compose(c)
			if _, dup := seen[res.Address]; dup {
				res.Reason = ReasonDuplicate
			} else {
				seen[res.Address] = struct{}{}
				res.Reason = ReasonMatched
			}
		}
		results = append(results, res)
	}
	return results
}
