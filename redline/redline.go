// Package redline computes tracked changes between the original base
// contract and the current working document, producing an annotated HTML
// view plus structured change entries and aggregate counts.
package redline

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/Ayush-Rawat-9/Charter-Party/model"
	"github.com/google/uuid"
)

// The three change types get three disjoint visual treatments. Styles
// live in the print stylesheet; the classes here are the contract.
const (
	classAdded    = "rl-added"
	classRemoved  = "rl-removed"
	classModified = "rl-modified"
)

// Generate diffs the base document against the current document. Every
// contiguous change maps to exactly one RedlineChange: a section that is
// removed then replaced is one modified entry, not a removed plus an
// added one.
func Generate(base, current *model.Document) *model.RedlineReport {
	report := &model.RedlineReport{Revision: current.Revision}

	decorations := make(map[string]string) // sectionID -> change type
	matchedBase := make(map[string]bool)   // base sectionID -> consumed

	for _, sec := range current.Sections {
		baseSec := matchBaseSection(base.Sections, sec, matchedBase)
		if baseSec == nil {
			decorations[sec.SectionID] = model.ChangeAdded
			report.Changes = append(report.Changes, model.RedlineChange{
				ChangeID:    uuid.New().String(),
				Type:        model.ChangeAdded,
				SectionID:   sec.SectionID,
				Section:     sectionLabel(sec),
				NewText:     sec.Body,
				Description: fmt.Sprintf("New section %q added", sec.Heading),
				Impact:      changeImpact(sec),
			})
			continue
		}

		matchedBase[baseSec.SectionID] = true
		diff := diffWords(baseSec.Body, sec.Body)
		if !diff.Changed() {
			continue
		}
		decorations[sec.SectionID] = model.ChangeModified
		report.Changes = append(report.Changes, model.RedlineChange{
			ChangeID:     uuid.New().String(),
			Type:         model.ChangeModified,
			SectionID:    sec.SectionID,
			Section:      sectionLabel(sec),
			OriginalText: baseSec.Body,
			NewText:      sec.Body,
			Description:  fmt.Sprintf("Section %q rewritten: %d words added, %d removed", sec.Heading, diff.Added, diff.Removed),
			Impact:       changeImpact(sec),
		})
	}

	var removed []model.Section
	for _, baseSec := range base.Sections {
		if matchedBase[baseSec.SectionID] {
			continue
		}
		if matchCurrentSection(current.Sections, baseSec) {
			continue
		}
		removed = append(removed, baseSec)
		report.Changes = append(report.Changes, model.RedlineChange{
			ChangeID:     uuid.New().String(),
			Type:         model.ChangeRemoved,
			SectionID:    baseSec.SectionID,
			Section:      sectionLabel(baseSec),
			OriginalText: baseSec.Body,
			Description:  fmt.Sprintf("Section %q removed", baseSec.Heading),
			Impact:       changeImpact(baseSec),
		})
	}

	for _, c := range report.Changes {
		switch c.Type {
		case model.ChangeAdded:
			report.Stats.Added++
		case model.ChangeRemoved:
			report.Stats.Removed++
		case model.ChangeModified:
			report.Stats.Modified++
		}
	}
	report.Stats.Total = report.Stats.Added + report.Stats.Removed + report.Stats.Modified

	report.RedlinedContract = render(current, base, decorations, removed)
	report.Summary = fmt.Sprintf("%d additions, %d removals, %d modifications against the base contract.",
		report.Stats.Added, report.Stats.Removed, report.Stats.Modified)
	return report
}

// matchBaseSection finds the base section a current section descends
// from: stable section ID first, then section number, then normalized
// heading. Already-consumed base sections are skipped.
func matchBaseSection(baseSections []model.Section, sec model.Section, consumed map[string]bool) *model.Section {
	for i := range baseSections {
		if baseSections[i].SectionID == sec.SectionID {
			return &baseSections[i]
		}
	}
	if sec.Number != "" {
		for i := range baseSections {
			if !consumed[baseSections[i].SectionID] && baseSections[i].Number == sec.Number {
				return &baseSections[i]
			}
		}
	}
	want := normalizeHeading(sec.Heading)
	for i := range baseSections {
		if !consumed[baseSections[i].SectionID] && normalizeHeading(baseSections[i].Heading) == want {
			return &baseSections[i]
		}
	}
	return nil
}

func matchCurrentSection(sections []model.Section, baseSec model.Section) bool {
	want := normalizeHeading(baseSec.Heading)
	for _, s := range sections {
		if s.SectionID == baseSec.SectionID {
			return true
		}
		if baseSec.Number != "" && s.Number == baseSec.Number {
			return true
		}
		if normalizeHeading(s.Heading) == want {
			return true
		}
	}
	return false
}

// render produces the annotated HTML. The structure mirrors the plain
// serialization exactly, so stripping the markup reproduces the current
// document.
func render(current, base *model.Document, decorations map[string]string, removed []model.Section) string {
	var b strings.Builder
	b.WriteString("<article class=\"charter-party\">\n")
	for _, s := range current.Sections {
		b.WriteString("<section data-section-id=\"")
		b.WriteString(s.SectionID)
		b.WriteString("\">\n<h2>")
		if s.Number != "" {
			b.WriteString(html.EscapeString(s.Number))
			b.WriteString(". ")
		}
		b.WriteString(html.EscapeString(s.Heading))
		b.WriteString("</h2>\n")

		switch decorations[s.SectionID] {
		case model.ChangeModified:
			// Old body struck out, new body highlighted.
			if orig := originalBody(base, s); orig != "" {
				b.WriteString("<p class=\"rl-original\"><span class=\"" + classRemoved + "\">")
				b.WriteString(html.EscapeString(flatten(orig)))
				b.WriteString("</span></p>\n")
			}
			writeParagraphs(&b, s.Body, classModified)
		case model.ChangeAdded:
			writeParagraphs(&b, s.Body, classAdded)
		default:
			writeParagraphs(&b, s.Body, "")
		}
		b.WriteString("</section>\n")
	}

	for _, s := range removed {
		b.WriteString("<section class=\"" + classRemoved + "\" data-section-id=\"")
		b.WriteString(s.SectionID)
		b.WriteString("\">\n<h2>")
		if s.Number != "" {
			b.WriteString(html.EscapeString(s.Number))
			b.WriteString(". ")
		}
		b.WriteString(html.EscapeString(s.Heading))
		b.WriteString("</h2>\n")
		writeParagraphs(&b, s.Body, "")
		b.WriteString("</section>\n")
	}

	b.WriteString("</article>")
	return b.String()
}

func writeParagraphs(b *strings.Builder, body, class string) {
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		b.WriteString("<p>")
		if class != "" {
			b.WriteString("<span class=\"" + class + "\">")
		}
		b.WriteString(html.EscapeString(para))
		if class != "" {
			b.WriteString("</span>")
		}
		b.WriteString("</p>\n")
	}
}

var (
	removedSectionRe = regexp.MustCompile(`(?s)<section class="rl-removed"[^>]*>.*?</section>\n?`)
	removedParaRe    = regexp.MustCompile(`(?s)<p class="rl-original"><span class="rl-removed">.*?</span></p>\n?`)
	removedSpanRe    = regexp.MustCompile(`(?s)<span class="rl-removed">.*?</span>`)
	wrapSpanRe       = regexp.MustCompile(`<span class="rl-(?:added|modified)">`)
)

// Strip removes all redline markup: removed content disappears with its
// markup, added and modified content keeps its text. The result is the
// plain serialization of the current document.
func Strip(redlined string) string {
	out := removedSectionRe.ReplaceAllString(redlined, "")
	out = removedParaRe.ReplaceAllString(out, "")
	out = removedSpanRe.ReplaceAllString(out, "")
	out = wrapSpanRe.ReplaceAllString(out, "")
	out = strings.ReplaceAll(out, "</span>", "")
	return out
}

func originalBody(base *model.Document, sec model.Section) string {
	if s := base.SectionByID(sec.SectionID); s != nil {
		return s.Body
	}
	for _, s := range base.Sections {
		if sec.Number != "" && s.Number == sec.Number {
			return s.Body
		}
		if normalizeHeading(s.Heading) == normalizeHeading(sec.Heading) {
			return s.Body
		}
	}
	return ""
}

// changeImpact grades a change by the commercial and legal weight of the
// section it touches.
func changeImpact(sec model.Section) string {
	lower := strings.ToLower(sec.Heading + " " + sec.Body)
	for _, kw := range []string{"freight", "demurrage", "liability", "indemnity", "law", "arbitration", "termination"} {
		if strings.Contains(lower, kw) {
			return model.SeverityHigh
		}
	}
	if sec.Category == model.CategoryLegal {
		return model.SeverityMedium
	}
	if len(sec.Body) < 80 {
		return model.SeverityLow
	}
	return model.SeverityMedium
}

func sectionLabel(s model.Section) string {
	if s.Number != "" {
		return s.Number + ". " + s.Heading
	}
	return s.Heading
}

func normalizeHeading(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func flatten(body string) string {
	return strings.Join(strings.Fields(body), " ")
}
