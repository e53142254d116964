// Package memory provides an in-memory book store with the same semantics
// as the sqlite repository. It backs handler tests and throwaway instances.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mrlokans/library/internal/entities"
)

// Store keeps books in a map guarded by a mutex.
type Store struct {
	mu     sync.Mutex
	nextID uint
	books  map[uint]entities.Book
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		nextID: 1,
		books:  make(map[uint]entities.Book),
	}
}

// ListBooks returns copies of all books ordered by title.
func (s *Store) ListBooks(ctx context.Context) ([]entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]entities.Book, 0, len(s.books))
	for _, b := range s.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool {
		if books[i].Title != books[j].Title {
			return books[i].Title < books[j].Title
		}
		return books[i].ID < books[j].ID
	})
	return books, nil
}

func (s *Store) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return nil, entities.ErrBookNotFound
	}
	return &book, nil
}

func (s *Store) CreateBook(ctx context.Context, title, author string, rating float64) (*entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.books {
		if b.Title == title {
			return nil, entities.ErrDuplicateTitle
		}
	}

	book := entities.Book{
		ID:     s.nextID,
		Title:  title,
		Author: author,
		Rating: rating,
	}
	s.books[book.ID] = book
	s.nextID++

	return &book, nil
}

func (s *Store) UpdateRating(ctx context.Context, id uint, rating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return entities.ErrBookNotFound
	}
	book.Rating = rating
	s.books[id] = book
	return nil
}

func (s *Store) DeleteBook(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return entities.ErrBookNotFound
	}
	delete(s.books, id)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of stored books.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.books)
}
