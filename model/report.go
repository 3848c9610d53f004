package model

// Severity and impact constants shared by the analysis reports
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"

	ImpactCritical = "critical"
	ImpactHigh     = "high"
	ImpactMedium   = "medium"
	ImpactLow      = "low"
)

// Finding is one risk item produced by the risk analyzer. Findings are
// computed fresh per revision and never survive a document mutation.
type Finding struct {
	SectionID  string `json:"section_id"`
	Severity   string `json:"severity"` // high, medium, low
	Note       string `json:"note"`
	Suggestion string `json:"suggestion"`
}

// RiskReport is the full risk analysis output for one document revision.
type RiskReport struct {
	Revision            int       `json:"revision"`
	Risks               []Finding `json:"risks"`
	ConsistencyFindings []string  `json:"consistency_findings"`
	Summary             string    `json:"summary,omitempty"`
}

// ComplianceItem status constants
const (
	StatusPresent     = "present"
	StatusMissing     = "missing"
	StatusIncomplete  = "incomplete"
	StatusConflicting = "conflicting"
)

// ComplianceItem is the classified result for one checklist requirement.
type ComplianceItem struct {
	ItemID      string `json:"item_id"`
	Category    string `json:"category"` // commercial, legal, operational
	Requirement string `json:"requirement"`
	Status      string `json:"status"` // present, missing, incomplete, conflicting
	Impact      string `json:"impact"` // critical, high, medium, low
	Suggestion  string `json:"suggestion"`
	Location    string `json:"location,omitempty"`
}

// ComplianceScores holds per-category and overall scores, 0-100.
type ComplianceScores struct {
	Overall     int `json:"overall"`
	Commercial  int `json:"commercial"`
	Legal       int `json:"legal"`
	Operational int `json:"operational"`
}

// ComplianceReport is the checker's output for one document revision.
type ComplianceReport struct {
	Revision        int              `json:"revision"`
	Items           []ComplianceItem `json:"items"`
	Scores          ComplianceScores `json:"scores"`
	Summary         string           `json:"summary"`
	CriticalIssues  []string         `json:"critical_issues"`
	Recommendations []string         `json:"recommendations"`
}

// RecommendedClause lifecycle: proposed clauses live in the session's
// current recommendation set; accepting one appends a section to the
// document, rejecting one only hides it from the current set.
type RecommendedClause struct {
	ClauseID   string `json:"clause_id"`
	Category   string `json:"category"`
	Title      string `json:"title"`
	ClauseText string `json:"clause_text"`
	Priority   string `json:"priority"` // high, medium, low
	Reasoning  string `json:"reasoning"`
}

// RecommendationSet is the recommender's output plus coverage scoring.
type RecommendationSet struct {
	Clauses       []RecommendedClause `json:"clauses"`
	CoverageScore int                 `json:"coverage_score"`
	Summary       string              `json:"summary"`
}

// RedlineChange type constants
const (
	ChangeAdded    = "added"
	ChangeRemoved  = "removed"
	ChangeModified = "modified"
)

// RedlineChange records one tracked change between the base contract and
// the current document.
type RedlineChange struct {
	ChangeID     string `json:"change_id"`
	Type         string `json:"type"` // added, removed, modified
	SectionID    string `json:"section_id"`
	Section      string `json:"section"`
	OriginalText string `json:"original_text,omitempty"`
	NewText      string `json:"new_text,omitempty"`
	Description  string `json:"description"`
	Impact       string `json:"impact"` // high, medium, low
}

// ChangeStats aggregates redline counts. Total is always the sum of the
// three change types.
type ChangeStats struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
	Total    int `json:"total"`
}

// RedlineReport is the redline generator's output for one (base, current)
// pair. Regenerated wholesale whenever the current document changes.
type RedlineReport struct {
	Revision         int             `json:"revision"`
	RedlinedContract string          `json:"redlined_contract"`
	Changes          []RedlineChange `json:"changes"`
	Stats            ChangeStats     `json:"stats"`
	Summary          string          `json:"summary"`
}
