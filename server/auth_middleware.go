package server

import (
	"context"
	"net/http"

	"guildgate/sessions"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the authenticated session
	ContextKeySession ContextKey = "session"
)

// RequireSessionAuth validates the signed session cookie and resolves it to a
// live session. Requests without a valid session are rejected with 401; the
// session is injected into the request context for downstream handlers.
func (s *Server) RequireSessionAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil {
				writeJSONError(w, "unauthenticated", "Login required", http.StatusUnauthorized)
				return
			}

			sessionID, err := s.signer.Verify(cookie.Value)
			if err != nil {
				writeError(w, err)
				return
			}

			session, err := s.sessions.Get(sessionID)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next(w, r.WithContext(ctx))
		}
	}
}

// sessionFromContext retrieves the session injected by RequireSessionAuth.
func sessionFromContext(ctx context.Context) (sessions.Session, bool) {
	session, ok := ctx.Value(ContextKeySession).(sessions.Session)
	return session, ok
}
