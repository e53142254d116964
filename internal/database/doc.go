// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and schema creation
//	├── books/           # Book CRUD operations on sqlite
//	└── memory/          # In-memory book store with the same semantics
//
// # Usage
//
//	db, err := database.NewDatabase("./library-books.db")
//	booksRepo := books.NewRepository(db.DB)
//
//	book, err := booksRepo.CreateBook(ctx, "Dune", "Frank Herbert", 4.8)
//	all, err := booksRepo.ListBooks(ctx)
//
// # Interface Implementations
//
// Both books.Repository and memory.Store implement http.BookStore. The
// compile-time checks live in internal/interfaces.
//
// # Errors
//
// Repositories translate driver errors into the sentinel errors of the
// entities package (ErrBookNotFound, ErrDuplicateTitle) so callers never
// depend on gorm or sqlite error values.
package database
