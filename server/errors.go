package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	autherrors "guildgate/internal/errors"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// writeError maps the service's error kinds onto HTTP status codes. All
// handlers funnel failures through here so a given kind always produces the
// same response shape.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case autherrors.Is(err, autherrors.ErrInvalidState):
		writeJSONError(w, "invalid_state", err.Error(), http.StatusBadRequest)
	case autherrors.Is(err, autherrors.ErrUnauthenticated),
		autherrors.Is(err, autherrors.ErrInvalidToken),
		autherrors.Is(err, autherrors.ErrSessionNotFound):
		writeJSONError(w, "unauthenticated", "Login required", http.StatusUnauthorized)
	case autherrors.Is(err, autherrors.ErrForbidden):
		writeJSONError(w, "forbidden", err.Error(), http.StatusForbidden)
	case autherrors.Is(err, autherrors.ErrNotFound):
		writeJSONError(w, "not_found", err.Error(), http.StatusNotFound)
	case autherrors.Is(err, autherrors.ErrConfiguration):
		log.Err(err).Msg("request rejected due to missing configuration")
		writeJSONError(w, "configuration_error", err.Error(), http.StatusInternalServerError)
	case autherrors.Is(err, autherrors.ErrUpstream):
		log.Err(err).Msg("upstream provider request failed")
		writeJSONError(w, "upstream_error", err.Error(), http.StatusInternalServerError)
	default:
		log.Err(err).Msg("unhandled handler error")
		writeJSONError(w, "server_error", "Internal server error", http.StatusInternalServerError)
	}
}

// writeJSONError writes an error response
func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("failed to encode JSON response")
	}
}
