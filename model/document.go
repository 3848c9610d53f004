package model

import (
	"time"
)

// Section provenance constants
const (
	ProvenanceBase        = "base"
	ProvenanceRecap       = "recap"
	ProvenanceNegotiated  = "negotiated"
	ProvenanceRecommended = "recommended"
)

// Section category constants
const (
	CategoryCommercial  = "commercial"
	CategoryLegal       = "legal"
	CategoryOperational = "operational"
)

// Section is an addressable unit of contract text. SectionID is assigned
// once and never reused, so findings and redlines can reference sections
// across revisions.
type Section struct {
	SectionID  string `json:"section_id"`
	Number     string `json:"number,omitempty"` // original numbering, e.g. "4" or "4.2"
	Heading    string `json:"heading"`
	Category   string `json:"category"` // commercial, legal, operational
	Body       string `json:"body"`
	Provenance string `json:"provenance"` // base, recap, negotiated, recommended
	RawSpan    string `json:"-"`          // source text as parsed, kept for diffing
}

// Document is the working contract owned by one session. It is mutated
// only through merge and clause-acceptance operations, which bump the
// revision counter.
type Document struct {
	ID        string    `json:"id"`
	Tenant    string    `json:"tenant"`
	Revision  int       `json:"revision"`
	Sections  []Section `json:"sections"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SectionByID returns the section with the given ID, or nil.
func (d *Document) SectionByID(id string) *Section {
	for i := range d.Sections {
		if d.Sections[i].SectionID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

// HasSection reports whether a section with the given ID exists.
func (d *Document) HasSection(id string) bool {
	return d.SectionByID(id) != nil
}

// PlainText returns the document's visible text: headings and bodies in
// order, one blank line between sections.
func (d *Document) PlainText() string {
	var out string
	for i, s := range d.Sections {
		if i > 0 {
			out += "\n\n"
		}
		if s.Number != "" {
			out += s.Number + ". "
		}
		out += s.Heading + "\n" + s.Body
	}
	return out
}

// Clone returns a deep copy so read-only stages can analyze a snapshot
// while mutations proceed against the stored document.
func (d *Document) Clone() *Document {
	cp := *d
	cp.Sections = make([]Section, len(d.Sections))
	copy(cp.Sections, d.Sections)
	return &cp
}

// Warning records a conflict resolved during merge. Immutable once
// created; attached to the revision that produced it.
type Warning struct {
	SectionID  string `json:"section_id"`
	Section    string `json:"section"` // heading or number for display
	Message    string `json:"message"`
	Resolution string `json:"resolution"` // which source won
}
