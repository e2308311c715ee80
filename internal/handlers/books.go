package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bookreview/internal/models"
	"bookreview/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	// Rendered verbatim when the catalog page is empty.
	msgNoBooksFound = "Kitoblar topilmadi."

	errListBooks       = "failed to list books"
	errGetBook         = "failed to load book"
	errBookNotFound    = "book not found"
	errInvalidBookID   = "invalid book id"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError translates service-layer failures into the error
// taxonomy: field errors become 400, not-found 404, anything else 500.
func (h *Handler) respondServiceError(c *gin.Context, err error, userMsg, logKey string) {
	var fe service.FieldErrors
	switch {
	case errors.As(err, &fe):
		c.JSON(http.StatusBadRequest, gin.H{"errors": fe})
	case errors.Is(err, service.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errBookNotFound})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err)
	}
}

// atoiSoft parses a query integer, falling back to zero on any garbage so
// the service layer applies its defaults (fail-soft pagination).
func atoiSoft(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List books
// @Description  Paginated catalog, optionally filtered by a title substring.
// @Tags         books
// @Produce      json
// @Param        q          query  string  false  "Title substring filter"
// @Param        page       query  int     false  "1-based page"  default(1)
// @Param        page_size  query  int     false  "Page size"     default(10)
// @Success      200  {object}  map[string]interface{}  "books, page metadata"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/books [get]
func (h *Handler) listBooks(c *gin.Context) {
	ctx := c.Request.Context()
	page, err := h.services.Catalog.ListBooks(ctx, service.BookFilter{
		Query:    c.Query("q"),
		Page:     atoiSoft(c.Query("page")),
		PageSize: atoiSoft(c.Query("page_size")),
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListBooks, "books_list_failed", err, "q", c.Query("q"))
		return
	}

	if len(page.Books) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":     msgNoBooksFound,
			"books":       []models.Book{},
			"page":        page.Page,
			"page_size":   page.PageSize,
			"total_count": page.TotalCount,
			"total_pages": page.TotalPages,
			"has_next":    page.HasNext,
			"has_prev":    page.HasPrev,
		})
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary      Book detail
// @Tags         books
// @Produce      json
// @Param        id   path  int  true  "Book ID"
// @Success      200  {object}  models.Book
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/books/{id} [get]
func (h *Handler) getBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errInvalidBookID})
		return
	}

	book, err := h.services.Catalog.GetBook(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err, errGetBook, "book_get_failed")
		return
	}
	c.JSON(http.StatusOK, book)
}

// AddBookRequest is an exported model for Swagger docs of the addBook payload.
type AddBookRequest struct {
	Title       string `json:"title" example:"Shoe Dog"`
	Description string `json:"description" example:"A memoir by the creator of Nike"`
	ISBN        string `json:"isbn" example:"9781501135910"`
}

// @Summary      Add book
// @Description  Seeding/administrative path; books are immutable once created.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body  AddBookRequest  true  "Book payload"
// @Success      201  {object}  map[string]int
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/books [post]
// @Security     BearerAuth
func (h *Handler) addBook(c *gin.Context) {
	var in service.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	id, err := h.services.Catalog.AddBook(c.Request.Context(), in)
	if err != nil {
		h.respondServiceError(c, err, "failed to add book", "book_add_failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
