package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/memory"
	"github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/session"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookStore implementations
var _ http.BookStore = (*books.Repository)(nil)
var _ http.BookStore = (*memory.Store)(nil)

// HealthChecker implementations
var _ http.HealthChecker = (*database.Database)(nil)
var _ http.HealthChecker = (*books.Repository)(nil)
var _ http.HealthChecker = (*memory.Store)(nil)

// =============================================================================
// Sessions
// =============================================================================

// Flasher implementations
var _ http.Flasher = (*session.Manager)(nil)

// =============================================================================
// Maintenance
// =============================================================================

// Snapshotter implementations
var _ scheduler.Snapshotter = (*database.Database)(nil)
