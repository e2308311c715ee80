package handlers

import (
	"errors"
	"net/http"

	"bookreview/internal/service"

	"github.com/gin-gonic/gin"
)

// Credentials payload for sign-in.
type authCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUpRequest is an exported model for Swagger docs of the signUp payload.
type SignUpRequest struct {
	Username  string `json:"username" example:"nurzilola"`
	FirstName string `json:"first_name" example:"Nurzilola"`
	LastName  string `json:"last_name" example:"Maminova"`
	Email     string `json:"email" example:"nurzilola@gmail.com"`
	Password  string `json:"password" example:"somepassword"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		// optional structured logging
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register
// @Description  Creates an account and sends a welcome email. Validation failures come back as per-field messages.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  SignUpRequest  true  "Registration form"
// @Success      201  {object}  map[string]int
// @Failure      400  {object}  map[string]interface{}  "errors: field → message"
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input service.RegisterInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input)
	if err != nil {
		var fe service.FieldErrors
		if errors.As(err, &fe) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fe})
			return
		}
		if h.log != nil {
			h.log.Errorw("auth_sign_up_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  authCredentials  true  "Credentials"
// @Success      200  {object}  map[string]string  "token"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_in_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Sign out
// @Description  Revokes the presented session token until its natural expiry.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /auth/sign-out [post]
// @Security     BearerAuth
func (h *Handler) signOut(c *gin.Context) {
	token := c.GetString(ctxAccessToken)
	if err := h.services.Logout(c.Request.Context(), token); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to sign out", "auth_sign_out_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}
