package stubserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/painel-dev/painelctl/internal/models"
)

// AccessProfileResponse represents an access profile in responses, with the
// permission list split out of its stored form.
type AccessProfileResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

func profileResponse(profile *models.AccessProfile) AccessProfileResponse {
	var permissions []string
	if profile.Permissions != "" {
		permissions = strings.Split(profile.Permissions, ",")
	}

	return AccessProfileResponse{
		ID:          profile.ID,
		Name:        profile.Name,
		Description: profile.Description,
		Permissions: permissions,
		CreatedAt:   profile.CreatedAt,
	}
}

func (s *Server) getProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apiError(c, http.StatusBadRequest, "Profile id must be numeric")
		return
	}

	var profile models.AccessProfile
	if err := s.db.Where("id = ?", id).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			apiError(c, http.StatusNotFound, "Access profile not found")
			return
		}
		s.logger.Error().Err(err).Int64("profile_id", id).Msg("Failed to find profile")
		apiError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, profileResponse(&profile))
}
