// Package report assembles the response shared by the CLI and the HTTP API
// from one extraction pass.
package report

import (
	"github.com/google/uuid"

	"github.com/routescan/internal/extract"
	"github.com/routescan/internal/postal"
)

// ComponentFunc breaks one composed address into components.
type ComponentFunc func(address string, c extract.Candidate) postal.Components

// FromCandidate uses the extracted fields as-is.
func FromCandidate(_ string, c extract.Candidate) postal.Components {
	return postal.FromCandidate(c)
}

// Libpostal reparses the composed address with libpostal.
func Libpostal(address string, _ extract.Candidate) postal.Components {
	return postal.Parse(address)
}

// Options selects the optional parts of a Report.
type Options struct {
	Explain    bool
	Components bool
	// Parse defaults to FromCandidate.
	Parse ComponentFunc
}

// Report is the outcome of extracting one manifest.
type Report struct {
	Addresses  []string             `json:"addresses"`
	LineCount  int                  `json:"line_count"`
	Lines      []extract.LineResult `json:"lines,omitempty"`
	Components []postal.Components  `json:"components,omitempty"`
	RunID      *uuid.UUID           `json:"run_id,omitempty"`
}

// Build runs ex over text once and fills in the parts requested by opts.
// Addresses always equals ex.ExtractAddresses(text).
func Build(ex *extract.Extractor, text string, opts Options) *Report {
	parse := opts.Parse
	if parse == nil {
		parse = FromCandidate
	}

	lines := ex.Explain(text)
	r := &Report{
		Addresses: []string{},
		LineCount: len(lines),
	}
	for _, l := range lines {
		if l.Reason != extract.ReasonMatched {
			continue
		}
		r.Addresses = append(r.Addresses, l.Address)
		if opts.Components {
			r.Components = append(r.Components, parse(l.Address, *l.Candidate))
		}
	}
	if opts.Explain {
		r.Lines = lines
	}
	return r
}
