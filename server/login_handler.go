package server

import (
	"net/http"
)

// LoginHandler starts the provider login flow. It issues a fresh state nonce,
// pins it to the browser in a short-lived cookie and redirects to the
// provider's consent screen.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.config.OAuthLoginReady(); err != nil {
			writeError(w, err)
			return
		}

		state := generateRandomString(16)
		s.setStateCookie(w, r, state)

		http.Redirect(w, r, s.provider.AuthCodeURL(state), http.StatusFound)
	}
}
