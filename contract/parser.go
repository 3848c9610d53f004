// Package contract provides the structural layer of the pipeline:
// parsing contract text into addressable sections, classifying headings
// by topic, enforcing defined-term consistency, and serializing documents
// to HTML.
package contract

import (
	"regexp"
	"strings"

	"github.com/Ayush-Rawat-9/Charter-Party/model"
	"github.com/google/uuid"
)

var (
	// numberedHeadingRe matches lines like "4. Demurrage and Despatch",
	// "4) Demurrage", "Clause 4 - Demurrage" or "Section 4.2 Notices".
	numberedHeadingRe = regexp.MustCompile(`(?i)^(?:(?:clause|section|article)\s+)?(\d+(?:\.\d+)*)\s*[.):\-]?\s*(.+)$`)
	// capsHeadingRe matches unnumbered all-caps heading lines.
	capsHeadingRe = regexp.MustCompile(`^[A-Z][A-Z0-9 /&'.\-]{2,70}$`)
)

// Parser splits normalized contract text into ordered sections.
type Parser struct {
	classifier Classifier
}

func NewParser(classifier Classifier) *Parser {
	if classifier == nil {
		classifier = NewKeywordClassifier()
	}
	return &Parser{classifier: classifier}
}

// Parse splits text into sections on heading lines, preserving the
// original numbering. Each section gets a fresh stable ID. Text before
// the first heading becomes a "Preamble" section.
func (p *Parser) Parse(text string) []model.Section {
	lines := strings.Split(text, "\n")

	var sections []model.Section
	var current *model.Section
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		current.RawSpan = strings.TrimSpace(current.RawSpan)
		sections = append(sections, *current)
		current = nil
		body = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if number, heading, ok := matchHeading(trimmed); ok {
			flush()
			current = &model.Section{
				SectionID:  uuid.New().String(),
				Number:     number,
				Heading:    heading,
				Category:   p.classifier.Classify(heading),
				Provenance: model.ProvenanceBase,
				RawSpan:    line,
			}
			continue
		}

		if current == nil {
			if trimmed == "" {
				continue
			}
			current = &model.Section{
				SectionID:  uuid.New().String(),
				Heading:    "Preamble",
				Category:   model.CategoryLegal,
				Provenance: model.ProvenanceBase,
			}
		}
		body = append(body, line)
		current.RawSpan += "\n" + line
	}
	flush()

	return sections
}

// matchHeading reports whether a line is a section heading, returning the
// numbering (if any) and the heading text.
func matchHeading(line string) (number, heading string, ok bool) {
	if line == "" || len(line) > 90 {
		return "", "", false
	}
	if m := numberedHeadingRe.FindStringSubmatch(line); m != nil {
		title := strings.TrimSpace(m[2])
		// A numbered line that reads like a sentence is body, not a heading.
		if len(title) > 70 || strings.Count(title, ".") > 1 {
			return "", "", false
		}
		return m[1], title, true
	}
	if capsHeadingRe.MatchString(line) {
		return "", titleCase(line), true
	}
	return "", "", false
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
