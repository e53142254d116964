// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: The five catalog operations used by the pages (internal/http/library.go)
//   - BookLister: Read-only listing for the JSON API (internal/http/books.go)
//   - HealthChecker: Store reachability for /health (internal/http/health.go)
//   - Snapshotter: Consistent database copies (internal/scheduler/backup.go)
//
// ## Session Interfaces
//
//   - Flasher: One-shot messages across a redirect (internal/http/library.go)
//
// # Adding a New Book Store
//
// The handlers never see gorm. A new backend only needs the BookStore methods
// and has to report the domain errors from internal/entities:
//
//	type Repository struct { db *sql.DB }
//
//	func (r *Repository) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
//	    // return entities.ErrBookNotFound when the row is missing
//	}
//
//	var _ http.BookStore = (*Repository)(nil)
//
// Then pass it as RouterConfig.BookStore in entrypoint.go.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
