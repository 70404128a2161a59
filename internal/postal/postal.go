// Package postal breaks a composed address into labelled components.
package postal

import (
	"strings"

	parser "github.com/openvenues/gopostal/parser"

	"github.com/routescan/internal/extract"
)

// Components is the subset of libpostal labels the manifests carry.
type Components struct {
	Road        string `json:"road,omitempty"`
	HouseNumber string `json:"house_number,omitempty"`
	City        string `json:"city,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
}

// Parse runs address through libpostal.
func Parse(address string) Components {
	return fromParsed(parser.ParseAddress(address))
}

func fromParsed(parsed []parser.ParsedComponent) Components {
	var c Components
	for _, comp := range parsed {
		value := strings.TrimSpace(comp.Value)
		switch comp.Label {
		case "road":
			c.Road = value
		case "house_number":
			c.HouseNumber = value
		case "city", "suburb", "city_district":
			// libpostal may label Stockholm suburbs as suburb; the first
			// locality-like label wins.
			if c.City == "" {
				c.City = value
			}
		case "postcode":
			c.Postcode = value
		}
	}
	return c
}

// FromCandidate maps an extracted candidate straight onto Components
// without consulting libpostal.
func FromCandidate(c extract.Candidate) Components {
	return Components{
		Road:        c.Street,
		HouseNumber: c.Number,
		City:        c.City,
	}
}
