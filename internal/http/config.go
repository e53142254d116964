package http

import (
	"github.com/mrlokans/library/internal/readonly"
	"github.com/mrlokans/library/internal/session"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	BookStore     BookStore
	HealthChecker HealthChecker

	// UI templates directory; empty uses the embedded templates
	TemplatesPath string

	// Application info
	Version string

	// Flash messages (optional)
	SessionManager *session.Manager

	// CSRF protection, disabled when the secret is empty
	CSRFSecret    []byte
	SecureCookies bool

	// Read-only mode (optional)
	ReadOnly *readonly.Middleware
}
