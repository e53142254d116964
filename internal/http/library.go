package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/readonly"
	"github.com/mrlokans/library/internal/security"
)

// BookStore defines the catalog operations the library pages need.
type BookStore interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, title, author string, rating float64) (*entities.Book, error)
	UpdateRating(ctx context.Context, id uint, rating float64) error
	DeleteBook(ctx context.Context, id uint) error
}

// Flasher keeps a message across a redirect.
type Flasher interface {
	PutFlash(ctx context.Context, message string)
	PopFlash(ctx context.Context) string
}

const invalidRatingMessage = "Invalid rating value. Please enter a valid number."

type LibraryController struct {
	store   BookStore
	flasher Flasher
}

// NewLibraryController creates the controller. flasher may be nil, in which
// case redirects carry no message.
func NewLibraryController(store BookStore, flasher Flasher) *LibraryController {
	return &LibraryController{
		store:   store,
		flasher: flasher,
	}
}

// Index lists every book ordered by title.
// GET /
func (lc *LibraryController) Index(c *gin.Context) {
	books, err := lc.store.ListBooks(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.HTML(http.StatusOK, "index", lc.page(c, gin.H{
		"Books": books,
	}))
}

// AddPage renders the empty add form.
// GET /add
func (lc *LibraryController) AddPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add", lc.page(c, gin.H{}))
}

// Add creates a book from the submitted form.
// POST /add
func (lc *LibraryController) Add(c *gin.Context) {
	title, ok := requiredField(c.GetPostForm("title"))
	if !ok {
		respondBadRequest(c, "Book title is missing in the form submission.")
		return
	}
	author, ok := requiredField(c.GetPostForm("author"))
	if !ok {
		respondBadRequest(c, "Book author is missing in the form submission.")
		return
	}
	rawRating, ok := requiredField(c.GetPostForm("rating"))
	if !ok {
		respondBadRequest(c, "Rating is missing in the form submission.")
		return
	}

	if entities.TextTooLong(title) {
		respondBadRequest(c, fmt.Sprintf("Book title must be at most %d characters.", entities.MaxTextLength))
		return
	}
	if entities.TextTooLong(author) {
		respondBadRequest(c, fmt.Sprintf("Book author must be at most %d characters.", entities.MaxTextLength))
		return
	}

	rating, err := entities.ParseRating(rawRating)
	if err != nil {
		respondBadRequest(c, invalidRatingMessage)
		return
	}

	book, err := lc.store.CreateBook(c.Request.Context(), title, author, rating)
	if errors.Is(err, entities.ErrDuplicateTitle) {
		respondConflict(c, fmt.Sprintf("A book titled %q is already in the library.", title))
		return
	}
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	lc.redirectHome(c, fmt.Sprintf("Added %q.", book.Title))
}

// EditPage renders the rating form for one book.
// GET /edit?id=<id>
func (lc *LibraryController) EditPage(c *gin.Context) {
	rawID, ok := requiredField(c.GetQuery("id"))
	if !ok {
		respondBadRequest(c, "Book ID is missing in the request.")
		return
	}

	book, ok := lc.loadBook(c, rawID)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "edit", lc.page(c, gin.H{
		"Book": book,
	}))
}

// Edit changes the rating of a book.
// POST /edit
func (lc *LibraryController) Edit(c *gin.Context) {
	rawID, ok := requiredField(c.GetPostForm("id"))
	if !ok {
		respondBadRequest(c, "Book ID is missing in the form submission.")
		return
	}

	book, ok := lc.loadBook(c, rawID)
	if !ok {
		return
	}

	rawRating, ok := requiredField(c.GetPostForm("new_rating"))
	if !ok {
		respondBadRequest(c, "New rating is missing in the form submission.")
		return
	}
	rating, err := entities.ParseRating(rawRating)
	if err != nil {
		respondBadRequest(c, invalidRatingMessage)
		return
	}

	err = lc.store.UpdateRating(c.Request.Context(), book.ID, rating)
	if errors.Is(err, entities.ErrBookNotFound) {
		respondNotFound(c, "Book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "update rating")
		return
	}

	lc.redirectHome(c, fmt.Sprintf("Updated the rating of %q.", book.Title))
}

// Delete removes a book.
// POST /delete
func (lc *LibraryController) Delete(c *gin.Context) {
	rawID, ok := requiredField(c.GetPostForm("id"))
	if !ok {
		respondBadRequest(c, "Book ID is missing in the form submission.")
		return
	}

	id, err := parseBookID(rawID)
	if err != nil {
		respondBadRequest(c, "Invalid book ID.")
		return
	}

	err = lc.store.DeleteBook(c.Request.Context(), id)
	if errors.Is(err, entities.ErrBookNotFound) {
		respondNotFound(c, "Book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	lc.redirectHome(c, "Book deleted.")
}

// loadBook parses rawID and fetches the book, answering the request itself
// when either step fails.
func (lc *LibraryController) loadBook(c *gin.Context, rawID string) (*entities.Book, bool) {
	id, err := parseBookID(rawID)
	if err != nil {
		respondBadRequest(c, "Invalid book ID.")
		return nil, false
	}

	book, err := lc.store.GetBook(c.Request.Context(), id)
	if errors.Is(err, entities.ErrBookNotFound) {
		respondNotFound(c, "Book")
		return nil, false
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return nil, false
	}
	return book, true
}

func (lc *LibraryController) redirectHome(c *gin.Context, message string) {
	if lc.flasher != nil {
		lc.flasher.PutFlash(c.Request.Context(), message)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// page adds the data every template expects.
func (lc *LibraryController) page(c *gin.Context, data gin.H) gin.H {
	if lc.flasher != nil {
		data["Flash"] = lc.flasher.PopFlash(c.Request.Context())
	}
	data["Error"] = c.Query("error")
	data["CSRFField"] = security.CSRFTokenField(c)
	data["ReadOnly"] = readonly.IsReadOnly(c)
	return data
}
