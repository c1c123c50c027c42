package server

import (
	"context"
	"net/http"

	autherrors "guildgate/internal/errors"
)

// meResponse is the identity and entitlement summary returned by /api/me
type meResponse struct {
	DiscordUserID string `json:"discord_user_id"`
	Username      string `json:"username"`
	HasBasic      bool   `json:"has_basic"`
	HasPro        bool   `json:"has_pro"`
}

// MeHandler reports who the caller is and which downloads they can reach.
// Entitlements are resolved against the provider on every call so role
// changes take effect immediately.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromContext(r.Context())
		if !ok {
			writeError(w, autherrors.ErrUnauthenticated)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.config.DiscordTimeout)
		defer cancel()

		rights, err := s.access.Resolve(ctx, session.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, meResponse{
			DiscordUserID: session.UserID,
			Username:      session.Username,
			HasBasic:      rights.HasBasic,
			HasPro:        rights.HasPro,
		})
	}
}

// LogoutHandler destroys the caller's session and clears the session cookie
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromContext(r.Context())
		if !ok {
			writeError(w, autherrors.ErrUnauthenticated)
			return
		}

		if err := s.sessions.Delete(session.ID); err != nil {
			writeError(w, err)
			return
		}

		s.clearSessionCookie(w, r)
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// HealthHandler reports process liveness
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
