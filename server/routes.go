package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware(s.RequireSessionAuth())...))

	// API routes
	s.RegisterRouteHandler("GET "+RouteAPIMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))

	// Gated downloads (entitlement checked per request inside the handler)
	s.RegisterRouteHandler("GET "+RouteDownload, ChainMiddleware(s.DownloadHandler(), s.APIMiddleware(s.RequireSessionAuth())...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET /{file}", ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError("GET", filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(method, path, error string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	errorString := Red + error + ResetColor
	log.Printf("[%-19s] %s %s\n", displayMethod, path, errorString)
}
