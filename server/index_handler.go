package server

import (
	"net/http"
)

// IndexHandler renders the home page
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		// "GET /" is the mux fallback, so anything but the root itself is unknown
		if r.URL.Path != "/" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}

		data := map[string]interface{}{
			"AppName": s.config.AppName,
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}
