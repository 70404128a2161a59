package normalize

import "strings"

// Correction is a literal substring replacement applied to composed street
// names.
type Correction struct {
	From string
	To   string
}

// StreetCorrections patch compound street names OCR regularly splits in two.
// They are exact-substring fixes for observed failures, not general rules.
var StreetCorrections = []Correction{
	{From: "Olshammars gatan", To: "Olshammarsgatan"},
	{From: "Bäverbäcks gränd", To: "Bäverbäcksgränd"},
}

// CorrectStreet applies StreetCorrections in order.
func CorrectStreet(s string) string {
	for _, c := range StreetCorrections {
		s = strings.ReplaceAll(s, c.From, c.To)
	}
	return s
}
