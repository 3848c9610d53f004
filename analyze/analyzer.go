// Package analyze scans a merged contract for risks, conflicts, and
// inconsistencies using the text-generation capability, keyed by section.
package analyze

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ayush-Rawat-9/Charter-Party/genai"
	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

const systemPrompt = `You are an expert legal contract analyst specializing in identifying risks, conflicts, and inconsistencies in Charter Party Contracts (shipping agreements).`

const schemaHint = `{
  "risks": [
    {"section_id": "string (one of the listed section IDs)", "severity": "high|medium|low", "note": "string", "suggestion": "string"}
  ],
  "consistency_findings": ["string"],
  "summary": "string"
}`

// Analyzer produces a RiskReport for one document revision.
type Analyzer struct {
	gen genai.Generator
}

func New(gen genai.Generator) *Analyzer {
	return &Analyzer{gen: gen}
}

// riskResponse mirrors the generation schema.
type riskResponse struct {
	Risks []struct {
		SectionID  string `json:"section_id"`
		Severity   string `json:"severity"`
		Note       string `json:"note"`
		Suggestion string `json:"suggestion"`
	} `json:"risks"`
	ConsistencyFindings []string `json:"consistency_findings"`
	Summary             string   `json:"summary"`
}

// Analyze runs risk analysis against a document snapshot. Findings that
// reference a section ID absent from this revision are dropped: a stale
// finding must never be shown.
func (a *Analyzer) Analyze(ctx context.Context, doc *model.Document) (*model.RiskReport, error) {
	var resp riskResponse
	req := genai.Request{
		Operation:  "risk analysis",
		System:     systemPrompt,
		Prompt:     buildPrompt(doc),
		SchemaHint: schemaHint,
	}
	if err := genai.GenerateJSON(ctx, a.gen, req, &resp); err != nil {
		return nil, err
	}

	report := &model.RiskReport{
		Revision:            doc.Revision,
		Risks:               make([]model.Finding, 0, len(resp.Risks)),
		ConsistencyFindings: resp.ConsistencyFindings,
		Summary:             resp.Summary,
	}
	for _, r := range resp.Risks {
		if !doc.HasSection(r.SectionID) {
			continue
		}
		report.Risks = append(report.Risks, model.Finding{
			SectionID:  r.SectionID,
			Severity:   normalizeSeverity(r.Severity),
			Note:       r.Note,
			Suggestion: r.Suggestion,
		})
	}
	return report, nil
}

func buildPrompt(doc *model.Document) string {
	var b strings.Builder
	b.WriteString("Analyze the following Charter Party Contract and identify risks, conflicts, and inconsistencies.\n\n")
	b.WriteString("Sections (use these section IDs in your findings):\n")
	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "- %s: %s\n", s.SectionID, s.Heading)
	}
	b.WriteString("\nCharter Party Contract Text:\n")
	b.WriteString(doc.PlainText())
	return b.String()
}

func normalizeSeverity(severity string) string {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case model.SeverityHigh:
		return model.SeverityHigh
	case model.SeverityLow:
		return model.SeverityLow
	default:
		return model.SeverityMedium
	}
}
