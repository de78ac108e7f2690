package session

import (
	"sync"
	"time"
)

// Stage is the checkout conversation position. The flow is intentionally
// linear: delivery details are captured once and payment selection is the
// last step before anything is persisted.
type Stage string

const (
	StageAwaitingAddress Stage = "awaiting_address"
	StageAwaitingNotes   Stage = "awaiting_notes"
	StageAwaitingPayment Stage = "awaiting_payment"
)

// Draft is the ephemeral state of one in-progress checkout conversation.
// The plaintext address lives only here; orders store the encrypted blob.
type Draft struct {
	AccountID        int64
	Stage            Stage
	AddressPlain     string
	AddressEncrypted []byte
	Notes            string
	Touched          time.Time
}

// Store keeps checkout drafts keyed by transport session. Drafts never
// survive a process restart and are swept after sitting idle too long.
type Store struct {
	mu     sync.Mutex
	drafts map[string]*Draft
	now    func() time.Time
}

// NewStore constructs an empty draft store.
func NewStore() *Store {
	return &Store{drafts: make(map[string]*Draft), now: time.Now}
}

// Begin replaces any existing draft for the session with a fresh one at the
// address stage.
func (s *Store) Begin(key string, accountID int64) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &Draft{AccountID: accountID, Stage: StageAwaitingAddress, Touched: s.now()}
	s.drafts[key] = d
	return *d
}

// Peek returns a copy of the session's draft, if one exists.
func (s *Store) Peek(key string) (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[key]
	if !ok {
		return Draft{}, false
	}
	return *d, true
}

// Update mutates the session's draft under the store lock and refreshes its
// idle clock. Returns the updated copy, or false when no draft exists.
func (s *Store) Update(key string, fn func(*Draft)) (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[key]
	if !ok {
		return Draft{}, false
	}
	fn(d)
	d.Touched = s.now()
	return *d, true
}

// Remove discards the session's draft. Persisted account state is untouched.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, key)
}

// SweepIdle drops drafts idle longer than maxIdle and reports how many.
func (s *Store) SweepIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for key, d := range s.drafts {
		if d.Touched.Before(cutoff) {
			delete(s.drafts, key)
			removed++
		}
	}
	return removed
}

// Size reports the number of live drafts.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}
