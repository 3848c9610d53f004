package contract

import (
	"strings"
	"testing"

	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

const sampleContract = `1. Vessel Identification
The Owners let and the Charterers hire the vessel described in Box 1.

2. Voyage and Cargo
The vessel shall proceed to the loading port and there load a full cargo.

3. Freight Payment
Freight shall be paid within three banking days of signing bills of lading.

4. Demurrage and Despatch
Demurrage at the rate stated in Box 20 per day or pro rata.`

func TestParseNumberedSections(t *testing.T) {
	p := NewParser(nil)
	sections := p.Parse(sampleContract)

	if len(sections) != 4 {
		t.Fatalf("Expected 4 sections, got %d", len(sections))
	}

	wantHeadings := []string{"Vessel Identification", "Voyage and Cargo", "Freight Payment", "Demurrage and Despatch"}
	for i, want := range wantHeadings {
		if sections[i].Heading != want {
			t.Errorf("Section %d: expected heading %q, got %q", i, want, sections[i].Heading)
		}
	}

	if sections[3].Number != "4" {
		t.Errorf("Expected number 4, got %q", sections[3].Number)
	}
	if !strings.Contains(sections[3].Body, "Demurrage at the rate") {
		t.Errorf("Body lost: %q", sections[3].Body)
	}
}

func TestParseSectionIDsUnique(t *testing.T) {
	p := NewParser(nil)
	sections := p.Parse(sampleContract)

	seen := make(map[string]bool)
	for _, s := range sections {
		if s.SectionID == "" {
			t.Error("Empty section ID")
		}
		if seen[s.SectionID] {
			t.Errorf("Duplicate section ID %s", s.SectionID)
		}
		seen[s.SectionID] = true
	}
}

func TestParseClausePrefix(t *testing.T) {
	p := NewParser(nil)
	sections := p.Parse("Clause 7 - Arbitration\nAll disputes shall be referred to arbitration in London.")

	if len(sections) != 1 {
		t.Fatalf("Expected 1 section, got %d", len(sections))
	}
	if sections[0].Number != "7" || sections[0].Heading != "Arbitration" {
		t.Errorf("Unexpected parse: %+v", sections[0])
	}
	if sections[0].Category != model.CategoryLegal {
		t.Errorf("Expected legal, got %s", sections[0].Category)
	}
}

func TestParseCapsHeading(t *testing.T) {
	p := NewParser(nil)
	sections := p.Parse("NOTICE OF READINESS\nNotice shall be tendered in writing during office hours.")

	if len(sections) != 1 {
		t.Fatalf("Expected 1 section, got %d", len(sections))
	}
	if sections[0].Heading != "Notice Of Readiness" {
		t.Errorf("Unexpected heading: %q", sections[0].Heading)
	}
	if sections[0].Category != model.CategoryOperational {
		t.Errorf("Expected operational, got %s", sections[0].Category)
	}
}

func TestParsePreamble(t *testing.T) {
	p := NewParser(nil)
	sections := p.Parse("It is this day mutually agreed between the parties.\n\n1. Vessel Identification\nAs per Box 1.")

	if len(sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(sections))
	}
	if sections[0].Heading != "Preamble" {
		t.Errorf("Expected preamble first, got %q", sections[0].Heading)
	}
}

func TestParseSentenceNotHeading(t *testing.T) {
	p := NewParser(nil)
	text := "1. Vessel Identification\n2 tugs shall be employed at the discharge port. The Master shall give 72, 48 and 24 hours notice. Costs to be shared equally between the parties as agreed herein before arrival."
	sections := p.Parse(text)

	if len(sections) != 1 {
		t.Fatalf("Expected numbered sentence folded into body, got %d sections", len(sections))
	}
}

func TestKeywordClassifier(t *testing.T) {
	c := NewKeywordClassifier()

	tests := []struct {
		heading string
		want    string
	}{
		{"Governing Law and Jurisdiction", model.CategoryLegal},
		{"Force Majeure", model.CategoryLegal},
		{"Insurance Requirements", model.CategoryLegal},
		{"Notice of Readiness", model.CategoryOperational},
		{"Bunkering and Deviation", model.CategoryOperational},
		{"Freight Payment", model.CategoryCommercial},
		{"Demurrage and Despatch", model.CategoryCommercial},
		{"Normal Working Hours", model.CategoryCommercial}, // "nor" must not match inside "normal"
	}

	for _, tt := range tests {
		if got := c.Classify(tt.heading); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.heading, got, tt.want)
		}
	}
}

func TestExpandAcronyms(t *testing.T) {
	got := ExpandAcronyms("This CP incorporates the CPA terms. Scrap the CP.")
	if strings.Contains(got, "This CP ") {
		t.Errorf("Standalone acronym survived: %q", got)
	}
	if !strings.Contains(got, "CPA") {
		t.Errorf("Expected CPA untouched: %q", got)
	}
	if !strings.HasSuffix(got, "Scrap the Charter Party Contract.") {
		t.Errorf("Trailing acronym not expanded: %q", got)
	}
}

func TestTermsApply(t *testing.T) {
	doc := &model.Document{
		Sections: []model.Section{
			{SectionID: "a", Heading: "Vessel Identification", Body: "The M/V OCEAN STAR, owned by Blue Wave Shipping."},
			{SectionID: "b", Heading: "Voyage", Body: "m.v. ocean star shall proceed with due despatch."},
		},
	}

	terms := Terms{Vessel: "MV OCEAN STAR", Owner: "Blue Wave Shipping"}
	terms.Apply(doc)

	if !strings.Contains(doc.Sections[0].Body, "MV OCEAN STAR") {
		t.Errorf("Slash variant not canonicalized: %q", doc.Sections[0].Body)
	}
	if !strings.Contains(doc.Sections[1].Body, "MV OCEAN STAR") {
		t.Errorf("Dotted lowercase variant not canonicalized: %q", doc.Sections[1].Body)
	}
}

func TestTermsApplyLeavesBareNameAlone(t *testing.T) {
	doc := &model.Document{
		Sections: []model.Section{
			{SectionID: "a", Heading: "Route", Body: "The vessel shall cross the Pacific Ocean via the northern route."},
		},
	}

	terms := Terms{Vessel: "MV PACIFIC"}
	terms.Apply(doc)

	if doc.Sections[0].Body != "The vessel shall cross the Pacific Ocean via the northern route." {
		t.Errorf("Bare word matching the vessel name was rewritten: %q", doc.Sections[0].Body)
	}
}

func TestToHTML(t *testing.T) {
	doc := &model.Document{
		Sections: []model.Section{
			{SectionID: "s1", Number: "1", Heading: "Vessel Identification", Body: "MV TEST & her gear.\n\nClass maintained."},
		},
	}

	html := ToHTML(doc)

	if !strings.Contains(html, `data-section-id="s1"`) {
		t.Error("Section ID attribute missing")
	}
	if !strings.Contains(html, "<h2>1. Vessel Identification</h2>") {
		t.Errorf("Heading markup wrong: %s", html)
	}
	if !strings.Contains(html, "MV TEST &amp; her gear.") {
		t.Error("Body not escaped")
	}
	if strings.Count(html, "<p>") != 2 {
		t.Errorf("Expected 2 paragraphs, got %d", strings.Count(html, "<p>"))
	}
}
