package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Ayush-Rawat-9/Charter-Party/config"
	"github.com/Ayush-Rawat-9/Charter-Party/model"
	"github.com/google/uuid"
)

// Session holds one negotiation's working state: the three merge inputs,
// the parsed base contract, the current document, and per-revision report
// caches. All fields are guarded by the session mutex; callers go through
// the store's Mutate/View helpers instead of touching them directly.
type Session struct {
	ID      string
	Tenant  string
	Created time.Time
	Updated time.Time

	BaseContract      string
	FixtureRecap      string
	NegotiatedClauses string

	BaseDocument *model.Document
	Document     *model.Document
	Warnings     []model.Warning

	// Per-revision caches. Each report carries the revision it was
	// computed against; a cache entry is valid only while that revision
	// is current.
	RiskReport       *model.RiskReport
	ComplianceReport *model.ComplianceReport
	Recommendations  *model.RecommendationSet
	RedlineReport    *model.RedlineReport

	// Recommendation clause IDs the user rejected. Hidden from the
	// current set; not persisted beyond the session.
	RejectedClauses map[string]bool

	mu sync.Mutex
}

// Revision reports the current committed document revision, 0 before the
// first merge.
func (s *Session) Revision() int {
	if s.Document == nil {
		return 0
	}
	return s.Document.Revision
}

// InvalidateCaches drops all cached reports. Called after any mutation
// that changes the document.
func (s *Session) InvalidateCaches() {
	s.RiskReport = nil
	s.ComplianceReport = nil
	s.Recommendations = nil
	s.RedlineReport = nil
}

// SessionStore is an in-memory store for negotiation sessions. In
// production this should be replaced with a database.
type SessionStore struct {
	sessions    map[string]*Session
	mu          sync.RWMutex
	maxSessions int // 0 = unlimited
}

func NewSessionStore(cfg *config.StoreConfig) *SessionStore {
	maxSessions := cfg.MaxSessions
	if maxSessions < 0 {
		maxSessions = 0
	}
	slog.Info("session store initialized", "max_sessions", maxSessions)
	return &SessionStore{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
	}
}

// Create registers a new empty session for a tenant.
func (s *SessionStore) Create(tenant string) *Session {
	session := &Session{
		ID:              uuid.New().String(),
		Tenant:          tenant,
		Created:         time.Now(),
		Updated:         time.Now(),
		RejectedClauses: make(map[string]bool),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	s.cleanupIfNeeded()
	return session
}

// Get returns a tenant's session, or nil when the ID is unknown or owned
// by another tenant.
func (s *SessionStore) Get(tenant, id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session := s.sessions[id]
	if session == nil || session.Tenant != tenant {
		return nil
	}
	return session
}

// ListByTenant returns a tenant's sessions, newest first.
func (s *SessionStore) ListByTenant(tenant string) []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Session
	for _, sess := range s.sessions {
		if sess.Tenant == tenant {
			result = append(result, sess)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Created.After(result[j].Created)
	})
	return result
}

// Delete removes a tenant's session.
func (s *SessionStore) Delete(tenant, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.sessions[id]; sess != nil && sess.Tenant == tenant {
		delete(s.sessions, id)
	}
}

// Mutate runs fn with the session mutation lock held, serializing writes
// per session. fn returning an error leaves whatever state it built; fn
// is expected to commit only on success.
func (s *SessionStore) Mutate(session *Session, fn func(*Session) error) error {
	session.mu.Lock()
	defer session.mu.Unlock()
	err := fn(session)
	if err == nil {
		session.Updated = time.Now()
	}
	return err
}

// View runs fn with the session lock held for a consistent read
// snapshot.
func (s *SessionStore) View(session *Session, fn func(*Session)) {
	session.mu.Lock()
	defer session.mu.Unlock()
	fn(session)
}

// Count returns the number of sessions in the store.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// cleanupIfNeeded removes the oldest sessions when the store exceeds
// maxSessions. Must be called with the store lock held.
func (s *SessionStore) cleanupIfNeeded() {
	if s.maxSessions <= 0 {
		return
	}
	if len(s.sessions) <= s.maxSessions {
		return
	}

	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Created.Before(sessions[j].Created)
	})

	removeCount := len(sessions) - s.maxSessions
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old session",
			"session_id", sessions[i].ID,
			"created_at", sessions[i].Created,
		)
		delete(s.sessions, sessions[i].ID)
	}
}
