// Package security holds the Gin middleware protecting the HTML forms:
// CSRF tokens (gorilla/csrf) and browser security headers.
//
// # Usage
//
//	router.Use(security.SecurityHeadersMiddleware())
//	router.Use(security.CSRFMiddleware(secret, cfg.Session.SecureCookies))
//
// Templates embed the token with the field returned by CSRFTokenField.
package security
