package sessions

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	autherrors "guildgate/internal/errors"
)

// DefaultIdleTTL is how long a session survives without being used.
const DefaultIdleTTL = 24 * time.Hour

// sessionIDBytes is the entropy of a session id (256 bits encoded base64url).
const sessionIDBytes = 32

// InMemorySessionRepo is an in-memory implementation of Repo with sliding
// idle expiry. Sessions do not survive a process restart.
type InMemorySessionRepo struct {
	mu    sync.Mutex // serializes Create's id check-then-set
	cache *ttlcache.Cache[string, Session]
}

// NewInMemorySessionRepo creates a new in-memory session repository whose
// entries expire after idleTTL without use.
func NewInMemorySessionRepo(idleTTL time.Duration) *InMemorySessionRepo {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}

	cache := ttlcache.New(
		ttlcache.WithTTL[string, Session](idleTTL),
	)

	// Start the expired-entry cleanup process
	go cache.Start()

	return &InMemorySessionRepo{cache: cache}
}

// Create mints a session for the given user under a fresh random id. The id
// is guaranteed not to collide with any session currently stored.
func (r *InMemorySessionRepo) Create(userID, username string) (Session, error) {
	session := Session{
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		id, err := newSessionID()
		if err != nil {
			return Session{}, err
		}
		if r.cache.Get(id) != nil {
			continue
		}
		session.ID = id
		r.cache.Set(id, session, ttlcache.DefaultTTL)
		return session, nil
	}
}

// Get retrieves a session by ID and refreshes its idle expiry window.
// Expired sessions are indistinguishable from ones that never existed.
func (r *InMemorySessionRepo) Get(sessionID string) (Session, error) {
	item := r.cache.Get(sessionID)
	if item == nil {
		return Session{}, autherrors.ErrSessionNotFound
	}
	return item.Value(), nil
}

// Delete removes a session by ID
func (r *InMemorySessionRepo) Delete(sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}

// Close stops the cleanup goroutine
func (r *InMemorySessionRepo) Close() {
	r.cache.Stop()
}

func newSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", autherrors.Wrapf(err, "failed to generate session id")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
