package auth

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/sakif/portfolio-cms/internal/model"
)

// SessionStore is the server-side session table, keyed by an opaque token.
//
// Entries carry their own TTL and a janitor goroutine evicts them after
// expiry. Get also checks ExpiresAt so a session is never honoured past its
// deadline, even between janitor runs.
type SessionStore struct {
	cache *gocache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionStore creates a store whose sessions live for ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &SessionStore{
		cache: gocache.New(ttl, cleanup),
		ttl:   ttl,
		now:   time.Now,
	}
}

// TTL is how long a new session stays valid.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Create issues a new session for userID under a fresh random token.
func (s *SessionStore) Create(userID string) model.Session {
	sess := model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.cache.Set(sess.ID, sess, s.ttl)
	return sess
}

// Get returns the session for token. Unknown and expired tokens both
// report false.
func (s *SessionStore) Get(token string) (model.Session, bool) {
	if token == "" {
		return model.Session{}, false
	}
	v, ok := s.cache.Get(token)
	if !ok {
		return model.Session{}, false
	}
	sess, ok := v.(model.Session)
	if !ok || sess.Expired(s.now()) {
		s.cache.Delete(token)
		return model.Session{}, false
	}
	return sess, true
}

// Destroy removes the session. Unknown tokens are ignored.
func (s *SessionStore) Destroy(token string) {
	s.cache.Delete(token)
}

// Len reports how many sessions are held, including expired ones the
// janitor has not evicted yet.
func (s *SessionStore) Len() int {
	return s.cache.ItemCount()
}
