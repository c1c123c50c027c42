package fakesessionrepo

import (
	"fmt"
	"sync"
	"time"

	autherrors "guildgate/internal/errors"
	"guildgate/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo is a map-backed sessions.Repo for tests. IDs are
// deterministic and failures can be injected per method.
type FakeSessionRepo struct {
	sessions map[string]sessions.Session
	nextID   int
	lock     sync.RWMutex

	CreateErr error
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		sessions: make(map[string]sessions.Session),
	}
}

func (sr *FakeSessionRepo) Create(userID, username string) (sessions.Session, error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.CreateErr != nil {
		return sessions.Session{}, sr.CreateErr
	}

	sr.nextID++
	session := sessions.Session{
		ID:        fmt.Sprintf("fake-session-%d", sr.nextID),
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	sr.sessions[session.ID] = session
	return session, nil
}

func (sr *FakeSessionRepo) Get(sessionID string) (sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	session, ok := sr.sessions[sessionID]
	if !ok {
		return sessions.Session{}, autherrors.ErrSessionNotFound
	}
	return session, nil
}

func (sr *FakeSessionRepo) Delete(sessionID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	delete(sr.sessions, sessionID)
	return nil
}

// Len reports how many sessions are live
func (sr *FakeSessionRepo) Len() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return len(sr.sessions)
}
