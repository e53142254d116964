// Command generate_demo creates a demo database with a handful of public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoBook struct {
	Title  string
	Author string
	Rating float64
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	db, err := openFreshDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	ctx := context.Background()

	for _, b := range publicDomainBooks() {
		book, err := repo.CreateBook(ctx, b.Title, b.Author, b.Rating)
		if err != nil {
			log.Printf("Failed to save book %s: %v", b.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s (id %d)", book.Title, book.Author, book.ID)
	}

	log.Println("Demo database generated successfully!")
}

// openFreshDatabase creates an empty database at dbPath, replacing any
// previous demo database and creating missing parent directories.
func openFreshDatabase(dbPath string) (*database.Database, error) {
	// Start fresh so reruns never collide on titles
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove existing demo database: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create demo directory: %w", err)
	}
	return database.NewDatabase(dbPath)
}

func publicDomainBooks() []demoBook {
	return []demoBook{
		{Title: "Meditations", Author: "Marcus Aurelius", Rating: 4.7},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Rating: 4.5},
		{Title: "Moby-Dick", Author: "Herman Melville", Rating: 3.9},
		{Title: "Walden", Author: "Henry David Thoreau", Rating: 4.1},
		{Title: "The Art of War", Author: "Sun Tzu", Rating: 4.2},
		{Title: "Frankenstein", Author: "Mary Shelley", Rating: 4.4},
		{Title: "On the Origin of Species", Author: "Charles Darwin", Rating: 4.0},
		{Title: "The Republic", Author: "Plato", Rating: 3.8},
	}
}
