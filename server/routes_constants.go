package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login & Logout
	RouteLogin    = "/login"
	RouteCallback = "/callback"
	RouteLogout   = "/logout"

	// API Routes
	RouteAPIMe = "/api/me"

	// Gated Download Routes (patterns)
	RouteDownload = "/premium/files/{file}"

	// Health
	RouteHealth = "/healthz"

	// Static Asset Routes (patterns)
	RouteIndex     = "/"
	RouteStaticCSS = "/css/{file}"
)
