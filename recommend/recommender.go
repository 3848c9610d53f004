// Package recommend proposes additional clauses for a fixture based on
// gaps between the voyage's stated needs and the base contract's
// coverage. Recommendations are judged against the base template, not
// the negotiated output, so they reflect what the fixture requires
// rather than what negotiation already patched.
package recommend

import (
	"context"
	"strings"

	"github.com/Ayush-Rawat-9/Charter-Party/compliance"
	"github.com/Ayush-Rawat-9/Charter-Party/genai"
	"github.com/Ayush-Rawat-9/Charter-Party/model"
	"github.com/google/uuid"
)

const systemPrompt = `You are an expert maritime lawyer with 20+ years experience in Charter Party Contracts. You understand the commercial, legal, and operational risks in shipping and can identify gaps in contract coverage.`

const schemaHint = `{
  "recommended_clauses": [
    {"category": "commercial|legal|operational|insurance|arbitration|force_majeure", "title": "string", "clause_text": "string", "priority": "high|medium|low", "reasoning": "string"}
  ],
  "summary": "string"
}`

// Recommender generates clause proposals for a (recap, base) pair.
type Recommender struct {
	gen genai.Generator
}

func New(gen genai.Generator) *Recommender {
	return &Recommender{gen: gen}
}

type recommendResponse struct {
	RecommendedClauses []struct {
		Category   string `json:"category"`
		Title      string `json:"title"`
		ClauseText string `json:"clause_text"`
		Priority   string `json:"priority"`
		Reasoning  string `json:"reasoning"`
	} `json:"recommended_clauses"`
	Summary string `json:"summary"`
}

// Recommend proposes clauses absent from the base contract. Clause IDs
// are assigned here; the coverage score is computed deterministically
// from checklist-topic hits in the base contract so identical inputs
// score identically.
func (r *Recommender) Recommend(ctx context.Context, fixtureRecap, baseContract string) (*model.RecommendationSet, error) {
	var resp recommendResponse
	req := genai.Request{
		Operation:  "clause recommendation",
		System:     systemPrompt,
		Prompt:     buildPrompt(fixtureRecap, baseContract),
		SchemaHint: schemaHint,
	}
	if err := genai.GenerateJSON(ctx, r.gen, req, &resp); err != nil {
		return nil, err
	}

	set := &model.RecommendationSet{
		Clauses:       make([]model.RecommendedClause, 0, len(resp.RecommendedClauses)),
		CoverageScore: CoverageScore(baseContract),
		Summary:       resp.Summary,
	}
	for _, c := range resp.RecommendedClauses {
		if strings.TrimSpace(c.ClauseText) == "" {
			continue
		}
		set.Clauses = append(set.Clauses, model.RecommendedClause{
			ClauseID:   uuid.New().String(),
			Category:   normalizeCategory(c.Category),
			Title:      c.Title,
			ClauseText: c.ClauseText,
			Priority:   normalizePriority(c.Priority),
			Reasoning:  c.Reasoning,
		})
	}
	return set, nil
}

// coverageKeywords maps each checklist topic to the words that indicate
// the base contract already covers it.
var coverageKeywords = map[string][]string{
	"com-vessel":        {"vessel"},
	"com-cargo":         {"cargo"},
	"com-ports":         {"port", "laycan"},
	"com-freight":       {"freight"},
	"com-demurrage":     {"demurrage", "despatch"},
	"com-laytime":       {"laytime"},
	"leg-law":           {"governing law", "jurisdiction"},
	"leg-arbitration":   {"arbitration", "dispute"},
	"leg-force-majeure": {"force majeure"},
	"leg-liability":     {"liability", "indemnity"},
	"leg-insurance":     {"insurance", "p&i"},
	"leg-termination":   {"termination", "cancellation", "cancelling"},
	"ops-nor":           {"notice of readiness", "nor"},
	"ops-bunkering":     {"bunker", "deviation"},
	"ops-subchartering": {"sub-charter", "sublet"},
	"ops-agency":        {"agent", "agency"},
	"ops-documentation": {"bill of lading", "documentation"},
	"ops-environment":   {"environmental", "safety", "ism"},
}

// CoverageScore measures how many mandatory checklist topics the base
// contract already mentions, 0-100. Monotonic: covering another topic
// never lowers the score.
func CoverageScore(baseContract string) int {
	lower := strings.ToLower(baseContract)
	covered := 0
	for _, def := range compliance.Checklist {
		for _, kw := range coverageKeywords[def.ItemID] {
			if strings.Contains(lower, kw) {
				covered++
				break
			}
		}
	}
	return covered * 100 / len(compliance.Checklist)
}

func buildPrompt(fixtureRecap, baseContract string) string {
	var b strings.Builder
	b.WriteString("Analyze the fixture recap and base contract below. Recommend additional clauses that should be added for comprehensive coverage of this voyage. For each, give complete clause text ready for insertion and reasoning tied to the fixture's specifics (cargo type, route, dates).\n\n")
	b.WriteString("Fixture Recap:\n")
	b.WriteString(fixtureRecap)
	b.WriteString("\n\nBase Contract:\n")
	b.WriteString(baseContract)
	return b.String()
}

// normalizeCategory keeps the recommender's richer category set: the
// three section categories plus insurance, arbitration and force
// majeure specialisations.
func normalizeCategory(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case model.CategoryLegal:
		return model.CategoryLegal
	case model.CategoryOperational:
		return model.CategoryOperational
	case "insurance":
		return "insurance"
	case "arbitration":
		return "arbitration"
	case "force_majeure", "force majeure":
		return "force_majeure"
	default:
		return model.CategoryCommercial
	}
}

// SectionCategory maps a recommendation category to the section category
// an accepted clause is filed under.
func SectionCategory(category string) string {
	switch category {
	case "insurance", "arbitration", "force_majeure", model.CategoryLegal:
		return model.CategoryLegal
	case model.CategoryOperational:
		return model.CategoryOperational
	default:
		return model.CategoryCommercial
	}
}

func normalizePriority(priority string) string {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case model.SeverityHigh:
		return model.SeverityHigh
	case model.SeverityLow:
		return model.SeverityLow
	default:
		return model.SeverityMedium
	}
}
