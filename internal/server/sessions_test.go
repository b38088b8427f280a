package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luillyfe/resume-insights/internal/types"
)

func newTestStore(t *testing.T, ttl time.Duration) *sessionStore {
	t.Helper()
	store := newSessionStore(ttl)
	t.Cleanup(store.Stop)
	return store
}

func TestSessionStore_PutGet(t *testing.T) {
	store := newTestStore(t, time.Minute)
	svc := &stubService{}

	store.Put(&session{ID: "s1", Candidate: &types.Candidate{Name: "Ada Lovelace"}, service: svc})

	sess, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", sess.Candidate.Name)
	assert.Equal(t, 1, store.Len())

	_, ok = store.Get("s2")
	assert.False(t, ok)
}

func TestSessionStore_ExpiredGetMisses(t *testing.T) {
	store := newTestStore(t, 10*time.Millisecond)
	svc := &stubService{}

	store.Put(&session{ID: "s1", service: svc})
	time.Sleep(20 * time.Millisecond)

	_, ok := store.Get("s1")
	assert.False(t, ok)
	assert.True(t, svc.closed, "expired session should release its engine")
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_GetSlidesExpiry(t *testing.T) {
	store := newTestStore(t, 50*time.Millisecond)

	store.Put(&session{ID: "s1", service: &stubService{}})

	// Keep touching the session past the original deadline
	for i := 0; i < 3; i++ {
		time.Sleep(30 * time.Millisecond)
		_, ok := store.Get("s1")
		require.True(t, ok)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store := newTestStore(t, time.Minute)
	svc := &stubService{}

	store.Put(&session{ID: "s1", service: svc})

	assert.True(t, store.Delete("s1"))
	assert.True(t, svc.closed)
	assert.Equal(t, 0, store.Len())

	assert.False(t, store.Delete("s1"))
}

func TestSessionStore_EvictExpired(t *testing.T) {
	store := newTestStore(t, 10*time.Millisecond)
	expired := &stubService{}
	fresh := &stubService{}

	store.Put(&session{ID: "old", service: expired})
	time.Sleep(20 * time.Millisecond)
	store.Put(&session{ID: "new", service: fresh})

	store.evictExpired()

	assert.True(t, expired.closed)
	assert.False(t, fresh.closed)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStore_StopClosesAll(t *testing.T) {
	store := newSessionStore(time.Minute)
	first := &stubService{}
	second := &stubService{}

	store.Put(&session{ID: "s1", service: first})
	store.Put(&session{ID: "s2", service: second})

	store.Stop()

	assert.True(t, first.closed)
	assert.True(t, second.closed)
	assert.Equal(t, 0, store.Len())
}
