package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/readonly"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/security"
	"github.com/mrlokans/library/internal/session"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT; SIGKILL cannot be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// BuildRouter wires an opened database into the HTTP layer according to cfg.
func BuildRouter(cfg *config.Config, db *database.Database, version string) (*gin.Engine, error) {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB for sessions: %w", err)
	}

	sessionManager, err := session.NewManager(sqlDB, cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session manager: %w", err)
	}

	var csrfSecret []byte
	if cfg.CSRF.Enabled {
		csrfSecret, err = security.ParseSecret(cfg.CSRF.Secret)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare CSRF secret: %w", err)
		}
		if cfg.CSRF.Secret == "" {
			log.Printf("Generated CSRF secret (set CSRF_SECRET to keep forms valid across restarts)")
		}
	} else {
		log.Printf("WARNING: CSRF protection is disabled")
	}

	if cfg.ReadOnly.Enabled {
		log.Printf("Read-only mode enabled - write operations will be blocked")
	}

	routerCfg := http_controllers.RouterConfig{
		BookStore:      books.NewRepository(db.DB),
		HealthChecker:  db,
		TemplatesPath:  cfg.UI.TemplatesPath,
		Version:        version,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Session.SecureCookies,
		ReadOnly:       readonly.NewMiddleware(cfg.ReadOnly.Enabled),
	}

	return http_controllers.NewRouter(routerCfg), nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library v%s", version)

	logLevel := logger.Warn
	if cfg.Database.LogSQL {
		logLevel = logger.Info
	}

	db, err := database.Open(cfg.Database.Path, logLevel)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	router, err := BuildRouter(cfg, db, version)
	if err != nil {
		db.Close()
		log.Fatalf("Failed to build router: %v", err)
	}

	backups := scheduler.NewBackupScheduler(db, scheduler.BackupConfig{
		Schedule: cfg.Backup.Schedule,
		Dir:      cfg.Backup.Dir,
		Keep:     cfg.Backup.Keep,
	})
	if err := backups.Start(); err != nil {
		db.Close()
		log.Fatalf("Failed to start backup scheduler: %v", err)
	}

	onShutdown := func(ctx context.Context) {
		backups.Stop()
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	Serve(router, cfg, onShutdown)
}
