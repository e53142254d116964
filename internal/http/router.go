package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/security"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(security.SecurityHeadersMiddleware())

	// Read-only mode answers writes before CSRF can send them back as expired forms
	if cfg.ReadOnly != nil {
		router.Use(cfg.ReadOnly.Handler())
	}

	// CSRF runs before the session so the session context is added on top of
	// the request CSRF replaces
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	var flasher Flasher
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
		flasher = cfg.SessionManager
	}

	router.SetHTMLTemplate(template.Must(loadTemplates(cfg.TemplatesPath)))

	health := NewHealthController(cfg.HealthChecker, cfg.Version)
	library := NewLibraryController(cfg.BookStore, flasher)
	books := NewBooksController(cfg.BookStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Books API
	router.GET("/api/books", books.GetAllBooks)

	// UI routes
	router.GET("/", library.Index)
	router.GET("/add", library.AddPage)
	router.POST("/add", library.Add)
	router.GET("/edit", library.EditPage)
	router.POST("/edit", library.Edit)
	router.POST("/delete", library.Delete)

	return router
}
