package handlers

import (
	"bookreview/internal/logger"
	"bookreview/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints
	h.registerAPIRoutes(router)

	// Live highlights feed (HTTP upgrade)
	router.GET("/ws", h.wsHighlights)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
		auth.POST("/sign-out", h.loginRequired, h.signOut)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		// Browsing is public; writes and the profile need a session.
		api.GET("/books", h.listBooks)
		api.GET("/books/:id", h.getBook)
		api.GET("/books/:id/reviews", h.listBookReviews)
		api.GET("/home", h.homeHighlights)

		api.POST("/books", h.loginRequired, h.addBook)
		api.POST("/books/:id/reviews", h.loginRequired, h.addReview)
		api.GET("/profile", h.loginRequired, h.getProfile)
		api.PUT("/profile", h.loginRequired, h.updateProfile)
	}
}
