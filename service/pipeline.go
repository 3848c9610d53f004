package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Ayush-Rawat-9/Charter-Party/analyze"
	"github.com/Ayush-Rawat-9/Charter-Party/compliance"
	"github.com/Ayush-Rawat-9/Charter-Party/contract"
	"github.com/Ayush-Rawat-9/Charter-Party/genai"
	"github.com/Ayush-Rawat-9/Charter-Party/merge"
	"github.com/Ayush-Rawat-9/Charter-Party/model"
	"github.com/Ayush-Rawat-9/Charter-Party/normalize"
	"github.com/Ayush-Rawat-9/Charter-Party/recommend"
	"github.com/Ayush-Rawat-9/Charter-Party/redline"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoDocument      = errors.New("session has no merged document yet")
	ErrClauseNotFound  = errors.New("recommended clause not found")
	ErrClauseRejected  = errors.New("recommended clause was rejected")
)

// Pipeline orchestrates the contract stages over the session store.
// Merge, accept, and reject mutate a session under its mutation lock;
// the analysis stages read a revision snapshot, call out, and cache the
// result only while that revision is still current.
type Pipeline struct {
	store       *SessionStore
	engine      *merge.Engine
	analyzer    *analyze.Analyzer
	checker     *compliance.Checker
	recommender *recommend.Recommender

	normalizer *normalize.Normalizer
	parser     *contract.Parser
}

func NewPipeline(store *SessionStore, gen genai.Generator) *Pipeline {
	classifier := contract.NewKeywordClassifier()
	return &Pipeline{
		store:       store,
		engine:      merge.NewEngine(classifier),
		analyzer:    analyze.New(gen),
		checker:     compliance.New(gen),
		recommender: recommend.New(gen),
		normalizer:  normalize.New(),
		parser:      contract.NewParser(classifier),
	}
}

// Merge assembles the three inputs into a working document and commits
// it to the session. A failed merge leaves the previously committed
// revision untouched.
func (p *Pipeline) Merge(tenant, sessionID, baseContract, fixtureRecap, negotiatedClauses string) (*Session, error) {
	session := p.store.Get(tenant, sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}

	err := p.store.Mutate(session, func(s *Session) error {
		doc, warnings, err := p.engine.Merge(baseContract, fixtureRecap, negotiatedClauses)
		if err != nil {
			return err
		}

		baseDoc := &model.Document{
			ID:       uuid.New().String(),
			Tenant:   tenant,
			Sections: p.parser.Parse(p.normalizer.Normalize(baseContract)),
		}

		doc.Tenant = tenant
		doc.Revision = s.Revision() + 1

		// Sections that survive a re-merge keep their IDs so redlines
		// and recommendations can reference them across revisions.
		if s.Document != nil {
			renames := merge.CarryForwardIDs(s.Document.Sections, doc.Sections)
			if len(renames) > 0 {
				for i := range warnings {
					if id, ok := renames[warnings[i].SectionID]; ok {
						warnings[i].SectionID = id
					}
				}
				doc.HTML = contract.ToHTML(doc)
			}
		}

		s.BaseContract = baseContract
		s.FixtureRecap = fixtureRecap
		s.NegotiatedClauses = negotiatedClauses
		s.BaseDocument = baseDoc
		s.Document = doc
		s.Warnings = warnings
		s.RejectedClauses = make(map[string]bool)
		s.InvalidateCaches()

		slog.Info("merge committed",
			"session_id", s.ID,
			"revision", doc.Revision,
			"sections", len(doc.Sections),
			"warnings", len(warnings),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Document returns a snapshot of the session's current document and
// merge warnings.
func (p *Pipeline) Document(tenant, sessionID string) (*model.Document, []model.Warning, error) {
	session := p.store.Get(tenant, sessionID)
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}

	var doc *model.Document
	var warnings []model.Warning
	p.store.View(session, func(s *Session) {
		if s.Document != nil {
			doc = s.Document.Clone()
			warnings = append(warnings, s.Warnings...)
		}
	})
	if doc == nil {
		return nil, nil, ErrNoDocument
	}
	return doc, warnings, nil
}

// AnalyzeRisk runs the risk stage against the current revision, reusing
// the cached report while the revision is unchanged.
func (p *Pipeline) AnalyzeRisk(ctx context.Context, tenant, sessionID string) (*model.RiskReport, error) {
	session := p.store.Get(tenant, sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}

	var snapshot *model.Document
	var cached *model.RiskReport
	p.store.View(session, func(s *Session) {
		if s.Document == nil {
			return
		}
		if s.RiskReport != nil && s.RiskReport.Revision == s.Document.Revision {
			cached = s.RiskReport
			return
		}
		snapshot = s.Document.Clone()
	})
	if cached != nil {
		return cached, nil
	}
	if snapshot == nil {
		return nil, ErrNoDocument
	}

	report, err := p.analyzer.Analyze(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	p.store.View(session, func(s *Session) {
		if s.Document != nil && s.Document.Revision == report.Revision {
			s.RiskReport = report
		}
	})
	return report, nil
}

// CheckCompliance runs the checklist stage against the current revision,
// reusing the cached report while the revision is unchanged.
func (p *Pipeline) CheckCompliance(ctx context.Context, tenant, sessionID string) (*model.ComplianceReport, error) {
	session := p.store.Get(tenant, sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}

	var snapshot *model.Document
	var recap string
	var cached *model.ComplianceReport
	p.store.View(session, func(s *Session) {
		if s.Document == nil {
			return
		}
		if s.ComplianceReport != nil && s.ComplianceReport.Revision == s.Document.Revision {
			cached = s.ComplianceReport
			return
		}
		snapshot = s.Document.Clone()
		recap = s.FixtureRecap
	})
	if cached != nil {
		return cached, nil
	}
	if snapshot == nil {
		return nil, ErrNoDocument
	}

	report, err := p.checker.Check(ctx, snapshot, recap)
	if err != nil {
		return nil, err
	}

	p.store.View(session, func(s *Session) {
		if s.Document != nil && s.Document.Revision == report.Revision {
			s.ComplianceReport = report
		}
	})
	return report, nil
}

// Recommend proposes protective clauses for the session's inputs.
// Rejected clauses are filtered out of the returned set.
func (p *Pipeline) Recommend(ctx context.Context, tenant, sessionID string) (*model.RecommendationSet, error) {
	session := p.store.Get(tenant, sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}

	var base, recap string
	var revision int
	var cached *model.RecommendationSet
	p.store.View(session, func(s *Session) {
		if s.Document == nil {
			return
		}
		revision = s.Document.Revision
		if s.Recommendations != nil {
			cached = filterRejected(s.Recommendations, s.RejectedClauses)
			return
		}
		base = s.BaseContract
		recap = s.FixtureRecap
	})
	if cached != nil {
		return cached, nil
	}
	if revision == 0 {
		return nil, ErrNoDocument
	}

	set, err := p.recommender.Recommend(ctx, recap, base)
	if err != nil {
		return nil, err
	}

	var visible *model.RecommendationSet
	p.store.View(session, func(s *Session) {
		if s.Document != nil && s.Document.Revision == revision && s.Recommendations == nil {
			s.Recommendations = set
		}
		visible = filterRejected(set, s.RejectedClauses)
	})
	return visible, nil
}

// AcceptClause inserts a recommended clause into the document as a new
// section with provenance "recommended", bumping the revision and
// invalidating cached reports.
func (p *Pipeline) AcceptClause(tenant, sessionID, clauseID string) (*Session, error) {
	session := p.store.Get(tenant, sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}

	err := p.store.Mutate(session, func(s *Session) error {
		if s.Document == nil {
			return ErrNoDocument
		}
		if s.RejectedClauses[clauseID] {
			return ErrClauseRejected
		}
		clause := findClause(s.Recommendations, clauseID)
		if clause == nil {
			return ErrClauseNotFound
		}

		section := model.Section{
			SectionID:  uuid.New().String(),
			Heading:    clause.Title,
			Category:   recommend.SectionCategory(clause.Category),
			Body:       contract.ExpandAcronyms(clause.ClauseText),
			Provenance: model.ProvenanceRecommended,
		}
		s.Document.Sections = append(s.Document.Sections, section)
		s.Document.Revision++
		s.Document.HTML = contract.ToHTML(s.Document)
		s.Document.UpdatedAt = time.Now()

		recs := s.Recommendations
		s.InvalidateCaches()
		// The recommendation set survives an accept; only the analysis
		// caches go stale. The accepted clause leaves the visible set.
		s.Recommendations = removeClause(recs, clauseID)

		slog.Info("recommended clause accepted",
			"session_id", s.ID,
			"clause_id", clauseID,
			"revision", s.Document.Revision,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// RejectClause hides a recommended clause from the current set. The
// rejection is not remembered across a re-merge.
func (p *Pipeline) RejectClause(tenant, sessionID, clauseID string) error {
	session := p.store.Get(tenant, sessionID)
	if session == nil {
		return ErrSessionNotFound
	}

	return p.store.Mutate(session, func(s *Session) error {
		if findClause(s.Recommendations, clauseID) == nil {
			return ErrClauseNotFound
		}
		s.RejectedClauses[clauseID] = true
		return nil
	})
}

// Redline diffs the base contract against the current document, reusing
// the cached report while the revision is unchanged.
func (p *Pipeline) Redline(tenant, sessionID string) (*model.RedlineReport, error) {
	session := p.store.Get(tenant, sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}

	var base, current *model.Document
	var cached *model.RedlineReport
	p.store.View(session, func(s *Session) {
		if s.Document == nil {
			return
		}
		if s.RedlineReport != nil && s.RedlineReport.Revision == s.Document.Revision {
			cached = s.RedlineReport
			return
		}
		base = s.BaseDocument.Clone()
		current = s.Document.Clone()
	})
	if cached != nil {
		return cached, nil
	}
	if current == nil {
		return nil, ErrNoDocument
	}

	report := redline.Generate(base, current)
	p.store.View(session, func(s *Session) {
		if s.Document != nil && s.Document.Revision == report.Revision {
			s.RedlineReport = report
		}
	})
	return report, nil
}

func filterRejected(set *model.RecommendationSet, rejected map[string]bool) *model.RecommendationSet {
	out := &model.RecommendationSet{
		CoverageScore: set.CoverageScore,
		Summary:       set.Summary,
	}
	for _, c := range set.Clauses {
		if !rejected[c.ClauseID] {
			out.Clauses = append(out.Clauses, c)
		}
	}
	return out
}

func removeClause(set *model.RecommendationSet, clauseID string) *model.RecommendationSet {
	if set == nil {
		return nil
	}
	out := &model.RecommendationSet{
		CoverageScore: set.CoverageScore,
		Summary:       set.Summary,
	}
	for _, c := range set.Clauses {
		if c.ClauseID != clauseID {
			out.Clauses = append(out.Clauses, c)
		}
	}
	return out
}

func findClause(set *model.RecommendationSet, clauseID string) *model.RecommendedClause {
	if set == nil {
		return nil
	}
	for i := range set.Clauses {
		if set.Clauses[i].ClauseID == clauseID {
			return &set.Clauses[i]
		}
	}
	return nil
}
