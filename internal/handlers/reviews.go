package handlers

import (
	"net/http"

	"bookreview/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errListReviews   = "failed to load reviews"
	errAddReview     = "failed to add review"
	errHomeHighlight = "failed to load highlights"
)

// Request DTO for submitting a review.
type reviewRequest struct {
	StarsGiven int    `json:"stars_given"` // range-checked by the service
	Comment    string `json:"comment"`
}

// AddReviewRequest is an exported model for Swagger docs of the addReview payload.
type AddReviewRequest struct {
	// Star rating, 1..5
	StarsGiven int `json:"stars_given" example:"4"`
	// Free-text comment
	Comment string `json:"comment" example:"Nice book"`
}

// @Summary      List reviews for a book
// @Description  All reviews in creation order, each with author identity.
// @Tags         reviews
// @Produce      json
// @Param        id   path  int  true  "Book ID"
// @Success      200  {object}  map[string]interface{}  "count, reviews"
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/books/{id}/reviews [get]
func (h *Handler) listBookReviews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errInvalidBookID})
		return
	}

	reviews, err := h.services.Reviews.ListForBook(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err, errListReviews, "reviews_list_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(reviews),
		"reviews": reviews,
	})
}

// @Summary      Submit a review
// @Description  Creates exactly one review tied to the signed-in user and the book.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "Book ID"
// @Param        body  body  AddReviewRequest true  "Review payload"
// @Success      201  {object}  map[string]int
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/books/{id}/reviews [post]
// @Security     BearerAuth
func (h *Handler) addReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errInvalidBookID})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	reviewID, err := h.services.Reviews.Add(c.Request.Context(), service.ReviewInput{
		BookID:     id,
		UserID:     c.GetInt(ctxUserID),
		StarsGiven: req.StarsGiven,
		Comment:    req.Comment,
	})
	if err != nil {
		h.respondServiceError(c, err, errAddReview, "review_add_failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": reviewID})
}

// @Summary      Home highlights
// @Description  Most recent reviews first, paginated.
// @Tags         reviews
// @Produce      json
// @Param        page       query  int  false  "1-based page"  default(1)
// @Param        page_size  query  int  false  "Page size"     default(10)
// @Success      200  {object}  map[string]interface{}  "reviews, page metadata"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/home [get]
func (h *Handler) homeHighlights(c *gin.Context) {
	page, err := h.services.Reviews.Highlights(c.Request.Context(), service.PageParams{
		Page:     atoiSoft(c.Query("page")),
		PageSize: atoiSoft(c.Query("page_size")),
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errHomeHighlight, "home_highlights_failed", err)
		return
	}
	c.JSON(http.StatusOK, page)
}
