package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selahapp/selah/internal/bible"
)

// BooksController serves the static book table clients use to render
// pickers and validate references locally.
type BooksController struct{}

func NewBooksController() *BooksController {
	return &BooksController{}
}

// List returns all books in canonical order.
// GET /api/books
func (bc *BooksController) List(c *gin.Context) {
	books := bible.Books()
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// Get returns a single book by ID or name.
// GET /api/books/:bookId
func (bc *BooksController) Get(c *gin.Context) {
	book, ok := bible.Find(c.Param("bookId"))
	if !ok {
		respondNotFound(c, "book")
		return
	}
	c.JSON(http.StatusOK, book)
}
