package extract

import "github.com/routescan/internal/normalize"

// Candidate is the street, number and city found on one line.
type Candidate struct {
	Street    string `json:"street"`
	Number    string `json:"number"`
	RawNumber string `json:"raw_number"`
	City      string `json:"city"`
}

// Compose renders c as "Street Number, City". Whitespace inside the street is
// collapsed before the literal street corrections are applied.
func Compose(c Candidate) string {
	street := normalize.CorrectStreet(normalize.CollapseSpaces(c.Street))
	return street + " " + c.Number + ", " + c.City
}

// Dedupe drops later exact repeats, keeping the first occurrence in place.
func Dedupe(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
