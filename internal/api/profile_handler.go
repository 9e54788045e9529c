package api

import (
	"github.com/gin-gonic/gin"

	"github.com/erandawijewantha/personalized-health-coach/internal/database"
	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// ProfileHandler serves the user profile endpoints.
type ProfileHandler struct {
	profiles *database.ProfileDAO
}

func NewProfileHandler(profiles *database.ProfileDAO) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Upsert creates or replaces the profile for the user in the path.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var profile types.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		respondBadRequest(c, "invalid profile body", err)
		return
	}
	profile.UserID = c.Param("user_id")

	if err := h.profiles.Upsert(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile)
}

// Get returns the stored profile, or 404 when none exists.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile)
}
