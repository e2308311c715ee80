package handlers

import (
	"net/http"

	"bookreview/internal/service"

	"github.com/gin-gonic/gin"
)

const profilePath = "/api/v1/profile"

// UpdateProfileRequest is an exported model for Swagger docs of the updateProfile payload.
type UpdateProfileRequest struct {
	Username  string `json:"username" example:"nurzilola"`
	FirstName string `json:"first_name" example:"Nurzilola"`
	LastName  string `json:"last_name" example:"Maminova"`
	Email     string `json:"email" example:"nurzilola@gmail.com"`
}

// @Summary      View profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/profile [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	user, err := h.services.Profile.Get(c.Request.Context(), c.GetInt(ctxUserID))
	if err != nil {
		h.respondServiceError(c, err, "failed to load profile", "profile_get_failed")
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Edit profile
// @Description  Persists username/name/email changes, then redirects to the profile view.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body  UpdateProfileRequest  true  "Profile form"
// @Success      302  {string}  string  "redirect to profile view"
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/profile [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	var in service.ProfileInput
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}

	if _, err := h.services.Profile.Update(c.Request.Context(), c.GetInt(ctxUserID), in); err != nil {
		h.respondServiceError(c, err, "failed to update profile", "profile_update_failed")
		return
	}
	c.Redirect(http.StatusFound, profilePath)
}
