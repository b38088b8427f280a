package server

import (
	"sync"
	"time"

	"github.com/luillyfe/resume-insights/internal/observability"
	"github.com/luillyfe/resume-insights/internal/types"
)

// evictionInterval is how often the store sweeps for expired sessions.
const evictionInterval = time.Minute

// session holds the state created by one resume upload. The service keeps
// the loaded query engine alive until the session is evicted.
type session struct {
	ID        string
	Candidate *types.Candidate
	service   resumeService
	expiresAt time.Time
}

// sessionStore is an in-memory TTL store for resume sessions. Nothing is
// persisted; an evicted session requires a fresh upload.
type sessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*session

	evictTicker *time.Ticker
	evictStop   chan struct{}
}

func newSessionStore(ttl time.Duration) *sessionStore {
	store := &sessionStore{
		ttl:      ttl,
		sessions: make(map[string]*session),
	}

	store.evictTicker = time.NewTicker(evictionInterval)
	store.evictStop = make(chan struct{})
	go store.evictLoop()

	return store
}

// Put registers a session and starts its TTL clock.
func (st *sessionStore) Put(sess *session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess.expiresAt = time.Now().Add(st.ttl)
	st.sessions[sess.ID] = sess
	observability.ActiveSessions.Inc()
}

// Get returns the session and slides its expiry forward.
func (st *sessionStore) Get(id string) (*session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(sess.expiresAt) {
		st.removeLocked(sess)
		return nil, false
	}

	sess.expiresAt = time.Now().Add(st.ttl)
	return sess, true
}

// Delete removes a session and releases its engine.
func (st *sessionStore) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return false
	}
	st.removeLocked(sess)
	return true
}

// Len reports how many sessions are currently held.
func (st *sessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Stop halts eviction and releases every remaining session.
func (st *sessionStore) Stop() {
	if st.evictTicker != nil {
		st.evictTicker.Stop()
	}
	if st.evictStop != nil {
		close(st.evictStop)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	for _, sess := range st.sessions {
		st.removeLocked(sess)
	}
}

func (st *sessionStore) evictLoop() {
	for {
		select {
		case <-st.evictTicker.C:
			st.evictExpired()
		case <-st.evictStop:
			return
		}
	}
}

func (st *sessionStore) evictExpired() {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	for _, sess := range st.sessions {
		if now.After(sess.expiresAt) {
			st.removeLocked(sess)
		}
	}
}

// removeLocked drops the session and closes its engine. Callers hold st.mu.
func (st *sessionStore) removeLocked(sess *session) {
	delete(st.sessions, sess.ID)
	observability.ActiveSessions.Dec()
	if sess.service != nil {
		_ = sess.service.Close()
	}
}
