package merge

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ayush-Rawat-9/Charter-Party/contract"
	"github.com/Ayush-Rawat-9/Charter-Party/model"
	"github.com/Ayush-Rawat-9/Charter-Party/normalize"
	"github.com/google/uuid"
)

// MinInputLength is the boundary validation threshold for each of the
// three merge inputs.
const MinInputLength = 20

// gistLen bounds the discarded-content excerpt recorded in a conflict
// warning.
const gistLen = 80

// Engine merges base contract, fixture recap, and negotiated clauses
// into one document. The merge is deterministic: same inputs, same
// structure.
type Engine struct {
	normalizer *normalize.Normalizer
	parser     *contract.Parser
	classifier contract.Classifier
}

func NewEngine(classifier contract.Classifier) *Engine {
	if classifier == nil {
		classifier = contract.NewKeywordClassifier()
	}
	return &Engine{
		normalizer: normalize.New(),
		parser:     contract.NewParser(classifier),
		classifier: classifier,
	}
}

// Merge produces the working document and the ordered conflict warnings.
// Validation failures are reported before any other work; a failed merge
// returns the warnings gathered so far inside the MergeError.
func (e *Engine) Merge(baseContract, fixtureRecap, negotiatedClauses string) (*model.Document, []model.Warning, error) {
	if err := validateInput("base_contract", baseContract); err != nil {
		return nil, nil, err
	}
	if err := validateInput("fixture_recap", fixtureRecap); err != nil {
		return nil, nil, err
	}
	if err := validateInput("negotiated_clauses", negotiatedClauses); err != nil {
		return nil, nil, err
	}

	base := e.normalizer.Normalize(baseContract)
	recap := e.normalizer.Normalize(fixtureRecap)
	negotiated := e.normalizer.Normalize(negotiatedClauses)

	sections := e.parser.Parse(base)
	if len(sections) == 0 {
		return nil, nil, &model.MergeError{Reason: "base contract has no parsable sections"}
	}

	doc := &model.Document{
		ID:        uuid.New().String(),
		Revision:  1,
		Sections:  sections,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	facts := ExtractFacts(recap)
	e.spliceFacts(doc, facts)

	var warnings []model.Warning
	for _, clause := range ParseNegotiated(negotiated) {
		warnings = e.applyClause(doc, clause, warnings)
	}

	terms := contract.Terms{Vessel: facts.Vessel, Charterer: facts.Charterer, Owner: facts.Owner}
	terms.Apply(doc)

	for i := range doc.Sections {
		doc.Sections[i].Heading = contract.ExpandAcronyms(doc.Sections[i].Heading)
		doc.Sections[i].Body = contract.ExpandAcronyms(doc.Sections[i].Body)
	}

	doc.HTML = contract.ToHTML(doc)
	if strings.TrimSpace(doc.PlainText()) == "" {
		return nil, nil, &model.MergeError{Reason: "merge produced an empty document", Warnings: warnings}
	}

	return doc, warnings, nil
}

func validateInput(field, value string) error {
	if len(strings.TrimSpace(value)) < MinInputLength {
		return &model.ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("must be at least %d characters", MinInputLength),
		}
	}
	return nil
}

// factTargets maps heading keywords to the recap facts that belong in
// that section. Placeholder tokens are replaced wherever they appear;
// facts without a placeholder are appended to the first matching section.
var factTargets = []struct {
	keywords    []string
	placeholder string
	label       string
	value       func(Facts) string
}{
	{[]string{"vessel", "ship", "description"}, "[VESSEL NAME]", "Vessel", func(f Facts) string { return f.Vessel }},
	{[]string{"vessel", "preamble", "parties"}, "[CHARTERER]", "Charterer", func(f Facts) string { return f.Charterer }},
	{[]string{"vessel", "preamble", "parties"}, "[OWNER]", "Owner", func(f Facts) string { return f.Owner }},
	{[]string{"cargo", "voyage"}, "[CARGO]", "Cargo", func(f Facts) string { return f.Cargo }},
	{[]string{"voyage", "port", "loading"}, "[LOAD PORT]", "Load port", func(f Facts) string { return f.LoadPort }},
	{[]string{"voyage", "port", "discharge"}, "[DISCHARGE PORT]", "Discharge port", func(f Facts) string { return f.DischargePort }},
	{[]string{"laycan", "laydays", "voyage", "cancelling"}, "[LAYCAN]", "Laycan", func(f Facts) string { return f.Laycan }},
	{[]string{"freight", "payment"}, "[FREIGHT RATE]", "Freight rate", func(f Facts) string { return f.FreightRate }},
	{[]string{"demurrage", "despatch"}, "[DEMURRAGE]", "Demurrage", func(f Facts) string { return f.Demurrage }},
}

// spliceFacts inserts recap facts into their target sections, by
// placeholder substitution where the template carries placeholders, by
// appended fact lines otherwise.
func (e *Engine) spliceFacts(doc *model.Document, facts Facts) {
	for _, target := range factTargets {
		value := target.value(facts)
		if value == "" {
			continue
		}

		substituted := false
		for i := range doc.Sections {
			if strings.Contains(doc.Sections[i].Body, target.placeholder) {
				doc.Sections[i].Body = strings.ReplaceAll(doc.Sections[i].Body, target.placeholder, value)
				doc.Sections[i].Provenance = model.ProvenanceRecap
				substituted = true
			}
		}
		if substituted {
			continue
		}

		if idx := e.findFactSection(doc.Sections, target.keywords); idx >= 0 {
			line := fmt.Sprintf("%s: %s (as per fixture recap).", target.label, value)
			if !strings.Contains(doc.Sections[idx].Body, line) {
				doc.Sections[idx].Body = strings.TrimSpace(doc.Sections[idx].Body + "\n\n" + line)
			}
			doc.Sections[idx].Provenance = model.ProvenanceRecap
		}
	}
}

func (e *Engine) findFactSection(sections []model.Section, keywords []string) int {
	for _, kw := range keywords {
		for i, s := range sections {
			if strings.Contains(strings.ToLower(s.Heading), kw) {
				return i
			}
		}
	}
	return -1
}

// applyClause merges one negotiated clause. A matching section is
// overridden (most-recent-wins) with a conflict warning; an unmatched
// clause is appended as a new section at the end of its category group.
func (e *Engine) applyClause(doc *model.Document, clause NegotiatedClause, warnings []model.Warning) []model.Warning {
	if strings.TrimSpace(clause.Text) == "" {
		return warnings
	}

	idx := MatchSection(doc.Sections, clause)
	if idx >= 0 {
		section := &doc.Sections[idx]
		if strings.TrimSpace(section.Body) != "" {
			warnings = append(warnings, model.Warning{
				SectionID:  section.SectionID,
				Section:    sectionLabel(*section),
				Message:    fmt.Sprintf("negotiated clause overrides existing content: %q", gist(section.Body)),
				Resolution: "negotiated clause retained (most recent wins)",
			})
		}
		section.Body = clause.Text
		section.Provenance = model.ProvenanceNegotiated
		return warnings
	}

	heading := clause.Heading
	if heading == "" {
		heading = "Additional Negotiated Clause"
	}
	newSection := model.Section{
		SectionID:  uuid.New().String(),
		Heading:    heading,
		Category:   e.classifier.Classify(heading + " " + clause.Text),
		Body:       clause.Text,
		Provenance: model.ProvenanceNegotiated,
	}
	doc.Sections = insertAtGroupEnd(doc.Sections, newSection)
	return warnings
}

// insertAtGroupEnd places a section after the last existing section of
// its category, or at the document end when the category is absent.
func insertAtGroupEnd(sections []model.Section, section model.Section) []model.Section {
	insertAt := len(sections)
	for i := len(sections) - 1; i >= 0; i-- {
		if sections[i].Category == section.Category {
			insertAt = i + 1
			break
		}
	}
	out := make([]model.Section, 0, len(sections)+1)
	out = append(out, sections[:insertAt]...)
	out = append(out, section)
	out = append(out, sections[insertAt:]...)
	return out
}

func sectionLabel(s model.Section) string {
	if s.Number != "" {
		return s.Number + ". " + s.Heading
	}
	return s.Heading
}

func gist(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	if len(body) > gistLen {
		return body[:gistLen] + "..."
	}
	return body
}
