// Package session stores per-visitor state between requests. The catalog
// only keeps one-shot flash messages shown after a post/redirect/get cycle.
package session

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/library/internal/config"
)

// Session data keys
const (
	SessionKeyFlash = "flash"
)

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a session manager persisted in the catalog database.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg config.Session) (*Manager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	return newManager(sqlite3store.New(sqlDB), cfg), nil
}

func newManager(store scs.Store, cfg config.Session) *Manager {
	sm := scs.New()
	sm.Store = store
	sm.Lifetime = cfg.Lifetime

	sm.Cookie.Name = "library_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}
}

// PutFlash stores a message to be shown on the next rendered page.
func (m *Manager) PutFlash(ctx context.Context, message string) {
	m.Put(ctx, SessionKeyFlash, message)
}

// PopFlash returns the pending flash message and clears it.
func (m *Manager) PopFlash(ctx context.Context) string {
	return m.PopString(ctx, SessionKeyFlash)
}
