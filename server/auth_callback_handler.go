package server

import (
	"context"
	"net/http"

	autherrors "guildgate/internal/errors"
)

// OAuthCallbackHandler completes the provider login flow. The state parameter
// is validated against the browser's nonce cookie before any credentials are
// exchanged; only a successful identity fetch mints a local session.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if errParam := r.FormValue("error"); errParam != "" {
			writeError(w, autherrors.Wrapf(autherrors.ErrInvalidState,
				"provider returned %q (%s)", errParam, r.FormValue("error_description")))
			return
		}

		code := r.FormValue("code")
		state := r.FormValue("state")
		if code == "" || state == "" {
			writeError(w, autherrors.Wrapf(autherrors.ErrInvalidState, "missing code or state parameter"))
			return
		}

		stateCookie, err := r.Cookie(stateCookieName)
		if err != nil {
			writeError(w, autherrors.Wrapf(autherrors.ErrInvalidState, "no login attempt in progress"))
			return
		}
		if stateCookie.Value != state {
			writeError(w, autherrors.Wrapf(autherrors.ErrInvalidState, "state parameter does not match login attempt"))
			return
		}

		if err := s.config.OAuthCallbackReady(); err != nil {
			writeError(w, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.config.DiscordTimeout)
		defer cancel()

		oauthToken, err := s.provider.ExchangeCode(ctx, code)
		if err != nil {
			writeError(w, err)
			return
		}

		user, err := s.provider.FetchUser(ctx, oauthToken)
		if err != nil {
			writeError(w, err)
			return
		}

		session, err := s.sessions.Create(user.ID, user.Username)
		if err != nil {
			writeError(w, err)
			return
		}

		s.clearStateCookie(w, r)
		s.setSessionCookie(w, r, s.signer.Sign(session.ID))

		http.Redirect(w, r, "/", http.StatusFound)
	}
}
