package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"guildgate/access"
	"guildgate/discord"
	"guildgate/internal/config"
	"guildgate/sessions"
	"guildgate/token"
)

// OAuthProvider is the slice of the provider client the login flow uses.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	FetchUser(ctx context.Context, token *oauth2.Token) (discord.User, error)
}

// AccessResolver derives a user's current download entitlements.
type AccessResolver interface {
	Resolve(ctx context.Context, userID string) (access.Rights, error)
}

type Server struct {
	config   config.Config
	mux      *http.ServeMux
	routes   []string
	signer   token.Signer
	sessions sessions.Repo
	provider OAuthProvider
	access   AccessResolver
}

func New(cfg config.Config, sessionRepo sessions.Repo, provider OAuthProvider, resolver AccessResolver) (*Server, error) {
	signer, err := token.NewHMACSigner(cfg.SessionSecret)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create cookie signer (is SESSION_SECRET set?): %w", err)
	}

	s := &Server{
		config:   cfg,
		mux:      http.NewServeMux(),
		signer:   signer,
		sessions: sessionRepo,
		provider: provider,
		access:   resolver,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if !s.config.IsDev() {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
