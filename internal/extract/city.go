package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/routescan/internal/normalize"
)

// CitySplitter cuts a line at the first known city name. Whatever follows
// the city (postcode, region, page furniture) is dropped.
type CitySplitter struct {
	re       *regexp.Regexp
	fallback string
}

// NewCitySplitter builds a splitter for the given names. fallback is
// returned as the city for lines that name none of them.
func NewCitySplitter(cities []string, fallback string) *CitySplitter {
	names := make([]string, 0, len(cities))
	for _, c := range cities {
		if c = strings.TrimSpace(c); c != "" {
			names = append(names, regexp.QuoteMeta(c))
		}
	}
	// Longer names first so "Sundbyberg" wins over a shorter name starting
	// at the same offset.
	sort.SliceStable(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	s := &CitySplitter{fallback: fallback}
	if len(names) > 0 {
		s.re = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(` + strings.Join(names, "|") + `)(?:[^\p{L}\p{N}]|$)`)
	}
	return s
}

// Split returns the text before the first whole-word city match and the
// matched city, title-cased. Without a match the whole line is returned
// together with the fallback city.
func (s *CitySplitter) Split(line string) (before, city string) {
	if s.re != nil {
		if m := s.re.FindStringSubmatchIndex(line); m != nil {
			return line[:m[2]], normalize.TitleCase(line[m[2]:m[3]])
		}
	}
	return line, s.fallback
}
