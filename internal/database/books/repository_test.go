package books

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_CreateBook(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book, err := repo.CreateBook(ctx, "Dune", "Frank Herbert", 4.8)
	require.NoError(t, err)
	assert.NotZero(t, book.ID)

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, got.ID)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Frank Herbert", got.Author)
	assert.Equal(t, 4.8, got.Rating)
}

func TestRepository_CreateBook_AssignsFreshIDs(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	first, err := repo.CreateBook(ctx, "Dune", "Frank Herbert", 4.8)
	require.NoError(t, err)
	second, err := repo.CreateBook(ctx, "Emma", "Jane Austen", 4.1)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestRepository_CreateBook_DuplicateTitle(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := repo.CreateBook(ctx, "Dune", "Frank Herbert", 4.8)
	require.NoError(t, err)

	_, err = repo.CreateBook(ctx, "Dune", "Someone Else", 1.0)
	assert.ErrorIs(t, err, entities.ErrDuplicateTitle)

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
	assert.Equal(t, "Frank Herbert", books[0].Author)
}

func TestRepository_CreateBook_DuplicateWithoutErrorTranslation(t *testing.T) {
	dbPath := "./test_books_untranslated.db"
	defer os.Remove(dbPath)

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Book{}))
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err = repo.CreateBook(ctx, "Dune", "Frank Herbert", 4.8)
	require.NoError(t, err)
	_, err = repo.CreateBook(ctx, "Dune", "Frank Herbert", 4.8)
	assert.ErrorIs(t, err, entities.ErrDuplicateTitle)
}

func TestRepository_GetBook_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.GetBook(context.Background(), 999)
	assert.ErrorIs(t, err, entities.ErrBookNotFound)
	assert.Nil(t, book)
}

func TestRepository_ListBooks_Empty(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	books, err := repo.ListBooks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestRepository_ListBooks_OrderedByTitle(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	titles := []string{"Middlemarch", "Dune", "Zorba the Greek", "Anna Karenina", "Emma"}
	for _, title := range titles {
		_, err := repo.CreateBook(ctx, title, "Author", 3)
		require.NoError(t, err)
	}

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, len(titles))

	got := make([]string, len(books))
	for i, b := range books {
		got[i] = b.Title
	}
	assert.True(t, sort.StringsAreSorted(got), "titles not sorted: %v", got)
	assert.Equal(t, "Anna Karenina", got[0])
	assert.Equal(t, "Zorba the Greek", got[len(got)-1])
}

func TestRepository_ListBooks_ExcludesDeleted(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	var ids []uint
	for i := 0; i < 4; i++ {
		book, err := repo.CreateBook(ctx, fmt.Sprintf("Book %d", i), "Author", float64(i))
		require.NoError(t, err)
		ids = append(ids, book.ID)
	}
	require.NoError(t, repo.DeleteBook(ctx, ids[1]))

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 3)
	for _, b := range books {
		assert.NotEqual(t, ids[1], b.ID)
	}
}

func TestRepository_UpdateRating(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book, err := repo.CreateBook(ctx, "Dune", "Frank Herbert", 4.8)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateRating(ctx, book.ID, 3.5))

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, got.Rating)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Frank Herbert", got.Author)
}

func TestRepository_UpdateRating_SameValue(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book, err := repo.CreateBook(ctx, "Dune", "Frank Herbert", 4.8)
	require.NoError(t, err)

	assert.NoError(t, repo.UpdateRating(ctx, book.ID, 4.8))
}

func TestRepository_UpdateRating_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.UpdateRating(context.Background(), 42, 1.0)
	assert.ErrorIs(t, err, entities.ErrBookNotFound)
}

func TestRepository_DeleteBook(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book, err := repo.CreateBook(ctx, "Dune", "Frank Herbert", 4.8)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBook(ctx, book.ID))

	_, err = repo.GetBook(ctx, book.ID)
	assert.ErrorIs(t, err, entities.ErrBookNotFound)

	// A second delete must not silently succeed
	err = repo.DeleteBook(ctx, book.ID)
	assert.ErrorIs(t, err, entities.ErrBookNotFound)
}

func TestRepository_DeleteBook_FreesTitle(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book, err := repo.CreateBook(ctx, "Dune", "Frank Herbert", 4.8)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteBook(ctx, book.ID))

	again, err := repo.CreateBook(ctx, "Dune", "Frank Herbert", 5)
	require.NoError(t, err)
	assert.NotZero(t, again.ID)
}

func TestRepository_ConcurrentDuplicateInserts(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateBook(ctx, "Dune", "Frank Herbert", 4.8)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestRepository_Ping(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	assert.NoError(t, repo.Ping(context.Background()))
}
