package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"guildgate/access"
	autherrors "guildgate/internal/errors"
)

const (
	// BasicArchive is available to members holding either tier role
	BasicArchive = "basic.zip"
	// ProArchive is available to members holding the pro role
	ProArchive = "pro.zip"
)

// DownloadHandler streams a gated archive to an entitled member. The archive
// catalogue is a closed set; any other name 404s without touching the disk.
// Entitlements are re-resolved on every request, so a role revoked in the
// guild blocks the very next download.
func (s *Server) DownloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromContext(r.Context())
		if !ok {
			writeError(w, autherrors.ErrUnauthenticated)
			return
		}

		file := r.PathValue("file")
		if file != BasicArchive && file != ProArchive {
			writeError(w, autherrors.Wrapf(autherrors.ErrNotFound, "no such download %q", file))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.config.DiscordTimeout)
		defer cancel()

		rights, err := s.access.Resolve(ctx, session.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		if !entitled(file, rights) {
			writeError(w, autherrors.Wrapf(autherrors.ErrForbidden, "missing the role required for %s", file))
			return
		}

		s.streamArchive(w, r, file)
	}
}

func entitled(file string, rights access.Rights) bool {
	switch file {
	case ProArchive:
		return rights.HasPro
	case BasicArchive:
		return rights.HasBasic
	default:
		return false
	}
}

func (s *Server) streamArchive(w http.ResponseWriter, r *http.Request, name string) {
	path := filepath.Join(s.config.PremiumDir, name)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		log.Warn().Str("file", name).Str("dir", s.config.PremiumDir).Msg("premium archive missing from disk")
		writeError(w, autherrors.Wrapf(autherrors.ErrNotFound, "%s is not available", name))
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, r, path)
}
