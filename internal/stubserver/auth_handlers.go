package stubserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/painel-dev/painelctl/internal/auth"
	"github.com/painel-dev/painelctl/internal/models"
)

// LoginRequest represents a login request. The password field is "senha" on
// the wire, matching the panel contract.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// AdminDetail represents admin information returned in responses
type AdminDetail struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Admin *AdminDetail `json:"admin"`
	Token string       `json:"token"`
}

func adminDetail(admin *models.Admin) *AdminDetail {
	return &AdminDetail{
		ID:        admin.ID,
		Name:      admin.Name,
		Email:     admin.Email,
		Role:      admin.Role,
		CreatedAt: admin.CreatedAt,
	}
}

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid login request")
		return
	}

	if err := s.validator.Struct(&req); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid login request")
		return
	}

	var admin models.Admin
	if err := s.db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			apiError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find admin")
		apiError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := auth.VerifyPassword(req.Senha, admin.SenhaHash); err != nil {
		apiError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		apiError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.logger.Info().Str("admin_id", admin.ID).Str("email", admin.Email).Msg("Admin logged in")

	c.JSON(http.StatusOK, LoginResponse{
		Admin: adminDetail(&admin),
		Token: token,
	})
}

func (s *Server) validate(c *gin.Context) {
	admin, exists := GetAdmin(c)
	if !exists {
		apiError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	c.JSON(http.StatusOK, adminDetail(admin))
}

// logout is best-effort bookkeeping: the token may be missing or already
// invalid, the response is 204 either way. Stateless JWTs mean there is
// nothing to revoke here.
func (s *Server) logout(c *gin.Context) {
	if token, err := extractBearerToken(c.GetHeader("Authorization")); err == nil {
		if claims, err := auth.ValidateToken(token); err == nil {
			s.logger.Info().Str("admin_id", claims.AdminID).Msg("Admin logged out")
		}
	}

	c.Status(http.StatusNoContent)
}
