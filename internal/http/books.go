package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/entities"
)

// BookLister provides read access to the whole catalog.
type BookLister interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
}

type BooksController struct {
	lister BookLister
}

func NewBooksController(lister BookLister) *BooksController {
	return &BooksController{
		lister: lister,
	}
}

// GetAllBooks returns the catalog as JSON, ordered by title.
// GET /api/books
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books, err := controller.lister.ListBooks(c.Request.Context())
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}
