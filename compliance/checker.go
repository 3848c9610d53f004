package compliance

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ayush-Rawat-9/Charter-Party/genai"
	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

const systemPrompt = `You are a maritime compliance expert with deep knowledge of international shipping regulations, charter party standards, and industry best practices. You understand the legal and commercial risks of non-compliance.`

const schemaHint = `{
  "items": [
    {"item_id": "string (one of the listed item IDs)", "status": "present|missing|incomplete|conflicting", "impact": "critical|high|medium|low", "suggestion": "string", "location": "string (optional)"}
  ],
  "summary": "string",
  "recommendations": ["string"]
}`

// Checker classifies the merged contract against the fixed checklist.
// The generation capability judges per-item status; scoring and critical
// issue derivation stay deterministic in-core.
type Checker struct {
	gen genai.Generator
}

func New(gen genai.Generator) *Checker {
	return &Checker{gen: gen}
}

type checkResponse struct {
	Items []struct {
		ItemID     string `json:"item_id"`
		Status     string `json:"status"`
		Impact     string `json:"impact"`
		Suggestion string `json:"suggestion"`
		Location   string `json:"location"`
	} `json:"items"`
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

// Check runs the compliance checklist against a document snapshot. The
// fixture recap gives voyage context so requirements are judged against
// what the fixture actually needs. Every checklist item appears in the
// report exactly once; topics the generation step omits are reported as
// missing.
func (c *Checker) Check(ctx context.Context, doc *model.Document, fixtureRecap string) (*model.ComplianceReport, error) {
	var resp checkResponse
	req := genai.Request{
		Operation:  "compliance check",
		System:     systemPrompt,
		Prompt:     buildPrompt(doc, fixtureRecap),
		SchemaHint: schemaHint,
	}
	if err := genai.GenerateJSON(ctx, c.gen, req, &resp); err != nil {
		return nil, err
	}

	classified := make(map[string]model.ComplianceItem, len(resp.Items))
	for _, item := range resp.Items {
		def := checklistItem(item.ItemID)
		if def == nil {
			continue
		}
		classified[item.ItemID] = model.ComplianceItem{
			ItemID:      def.ItemID,
			Category:    def.Category,
			Requirement: def.Requirement,
			Status:      normalizeStatus(item.Status),
			Impact:      normalizeImpact(item.Impact, def.Impact),
			Suggestion:  item.Suggestion,
			Location:    item.Location,
		}
	}

	items := make([]model.ComplianceItem, 0, len(Checklist))
	for _, def := range Checklist {
		if item, ok := classified[def.ItemID]; ok {
			items = append(items, item)
			continue
		}
		items = append(items, model.ComplianceItem{
			ItemID:      def.ItemID,
			Category:    def.Category,
			Requirement: def.Requirement,
			Status:      model.StatusMissing,
			Impact:      def.Impact,
			Suggestion:  "Add a clause covering: " + def.Requirement,
		})
	}

	return &model.ComplianceReport{
		Revision:        doc.Revision,
		Items:           items,
		Scores:          Score(items),
		Summary:         resp.Summary,
		CriticalIssues:  CriticalIssues(items),
		Recommendations: resp.Recommendations,
	}, nil
}

func buildPrompt(doc *model.Document, fixtureRecap string) string {
	var b strings.Builder
	b.WriteString("Verify the Charter Party Contract below against these mandatory requirements. For each item, classify its status in the contract.\n\nChecklist:\n")
	for _, def := range Checklist {
		fmt.Fprintf(&b, "- %s (%s): %s\n", def.ItemID, def.Category, def.Requirement)
	}
	b.WriteString("\nFixture Recap (voyage context):\n")
	b.WriteString(fixtureRecap)
	b.WriteString("\n\nContract Text:\n")
	b.WriteString(doc.PlainText())
	return b.String()
}

func normalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case model.StatusPresent:
		return model.StatusPresent
	case model.StatusIncomplete:
		return model.StatusIncomplete
	case model.StatusConflicting:
		return model.StatusConflicting
	default:
		return model.StatusMissing
	}
}

func normalizeImpact(impact, fallback string) string {
	switch strings.ToLower(strings.TrimSpace(impact)) {
	case model.ImpactCritical:
		return model.ImpactCritical
	case model.ImpactHigh:
		return model.ImpactHigh
	case model.ImpactMedium:
		return model.ImpactMedium
	case model.ImpactLow:
		return model.ImpactLow
	default:
		return fallback
	}
}
