package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session wraps a Processor for use from the web layer. The processor
// itself assumes serialized calls, so every session operation takes the
// session mutex; two requests hitting the same session never overlap a
// bulk fix with a summary pass.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	processor *Processor
	lastUsed  time.Time
}

// touch must be called with mu held.
func (s *Session) touch() {
	s.lastUsed = time.Now()
}

// Summarize returns a fresh error summary for the session's table.
func (s *Session) Summarize() *ErrorSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.processor.Summarize()
}

// CountErrors returns the total failing-check count.
func (s *Session) CountErrors() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.processor.CountErrors()
}

// ApplyBulkFix mutates the session's table and returns the new total
// failing-check count.
func (s *Session) ApplyBulkFix(column, target, replacement string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.processor.ApplyBulkFix(column, target, replacement)
}

// SplitExport partitions the session's table into valid/invalid CSV text.
func (s *Session) SplitExport() (*SplitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.processor.SplitExport()
}

// ValidSnapshot returns the headers and a deep copy of the rows that pass
// every check, safe to hand to a publisher outside the session lock.
func (s *Session) ValidSnapshot() (headers []string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	headers = s.processor.Headers()
	for _, row := range s.processor.ValidRows() {
		rows = append(rows, append([]string(nil), row...))
	}
	return headers, rows
}

// Headers returns a copy of the session table's header row.
func (s *Session) Headers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processor.Headers()
}

// RowCount returns the number of data rows.
func (s *Session) RowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processor.RowCount()
}

// SessionStore is the in-memory registry of active validation sessions,
// keyed by generated ID. Sessions expire after a period of disuse and the
// store refuses new sessions past a cap.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
	ttl      time.Duration
}

// NewSessionStore creates a store holding at most max sessions, each
// expiring after ttl of inactivity.
func NewSessionStore(max int, ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		max:      max,
		ttl:      ttl,
	}
}

// Create parses the inputs, builds a processor, and registers it under a
// fresh session ID. Returns ErrTooManySessions when the cap is reached,
// or the construction error when either input is malformed.
func (st *SessionStore) Create(csvText, rulesJSON string) (*Session, error) {
	processor, err := NewProcessor(csvText, rulesJSON)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.sessions) >= st.max {
		return nil, ErrTooManySessions
	}

	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		processor: processor,
		lastUsed:  now,
	}
	st.sessions[session.ID] = session
	return session, nil
}

// Get returns the session with the given ID, or ErrSessionNotFound.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	session, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session. Returns ErrSessionNotFound for unknown IDs.
func (st *SessionStore) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}

// Len returns the number of active sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes sessions idle longer than the store TTL and returns how
// many were evicted.
func (st *SessionStore) Sweep() int {
	cutoff := time.Now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	evicted := 0
	for id, session := range st.sessions {
		session.mu.Lock()
		idle := session.lastUsed.Before(cutoff)
		session.mu.Unlock()

		if idle {
			delete(st.sessions, id)
			evicted++
		}
	}
	return evicted
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
// Call in a goroutine from main.
func (st *SessionStore) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}
