package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/Ayush-Rawat-9/Charter-Party/genai"
	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

func testDoc() *model.Document {
	return &model.Document{
		ID:       "doc-1",
		Revision: 3,
		Sections: []model.Section{
			{SectionID: "sec-a", Number: "1", Heading: "Vessel Identification", Body: "MV TEST."},
			{SectionID: "sec-b", Number: "2", Heading: "Freight Payment", Body: "USD 42.50 per MT."},
		},
	}
}

func TestAnalyze(t *testing.T) {
	stub := &genai.Stub{Responses: []string{`{
		"risks": [
			{"section_id": "sec-b", "severity": "HIGH", "note": "No payment deadline stated.", "suggestion": "Add banking days."},
			{"section_id": "sec-gone", "severity": "low", "note": "stale", "suggestion": "drop me"}
		],
		"consistency_findings": ["Vessel name spelled two ways."],
		"summary": "One high risk found."
	}`}}

	report, err := New(stub).Analyze(context.Background(), testDoc())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.Revision != 3 {
		t.Errorf("Expected revision 3, got %d", report.Revision)
	}
	if len(report.Risks) != 1 {
		t.Fatalf("Expected stale finding dropped, got %d risks", len(report.Risks))
	}
	if report.Risks[0].SectionID != "sec-b" {
		t.Errorf("Wrong section: %s", report.Risks[0].SectionID)
	}
	if report.Risks[0].Severity != model.SeverityHigh {
		t.Errorf("Severity not normalized: %s", report.Risks[0].Severity)
	}
	if len(report.ConsistencyFindings) != 1 {
		t.Errorf("Consistency findings lost: %+v", report.ConsistencyFindings)
	}
}

func TestAnalyzeGenerationFailure(t *testing.T) {
	stub := &genai.Stub{Err: errors.New("model overloaded")}

	_, err := New(stub).Analyze(context.Background(), testDoc())
	if err == nil {
		t.Fatal("Expected error")
	}
	if !model.IsGeneration(err) {
		t.Errorf("Expected GenerationError, got %T", err)
	}
}

func TestAnalyzeInvalidSeverityDefaultsMedium(t *testing.T) {
	stub := &genai.Stub{Responses: []string{`{"risks":[{"section_id":"sec-a","severity":"catastrophic","note":"n","suggestion":"s"}],"consistency_findings":[],"summary":""}`}}

	report, err := New(stub).Analyze(context.Background(), testDoc())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if report.Risks[0].Severity != model.SeverityMedium {
		t.Errorf("Expected medium default, got %s", report.Risks[0].Severity)
	}
}
