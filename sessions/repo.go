package sessions

import "time"

// Session is the server-side state of a logged-in visitor. It lives from a
// successful provider login until logout or idle expiry. Entitlements are
// deliberately absent: roles are resolved against the provider on every
// request, never stored.
type Session struct {
	ID        string    // Opaque random identifier, at least 128 bits
	UserID    string    // Provider's stable user id
	Username  string    // Display name captured at login
	CreatedAt time.Time // When the session was created
}

// Repo defines the interface for session storage operations.
type Repo interface {
	// Create mints a session with a fresh unique id for the given user
	Create(userID, username string) (Session, error)

	// Get retrieves a live session by ID
	Get(sessionID string) (Session, error)

	// Delete removes a session by ID. Deleting an unknown id is a no-op
	Delete(sessionID string) error
}
