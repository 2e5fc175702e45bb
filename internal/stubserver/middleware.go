package stubserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/painel-dev/painelctl/internal/auth"
	"github.com/painel-dev/painelctl/internal/models"
)

const bearerPrefix = "Bearer "

var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthFormat = errors.New("invalid authorization header format")
	ErrEmptyToken        = errors.New("empty token")
	ErrInvalidToken      = errors.New("invalid token")
	ErrAdminNotFound     = errors.New("admin not found")
)

func setAdmin(c *gin.Context, admin *models.Admin) {
	c.Set("admin", admin)
}

// GetAdmin returns the authenticated admin attached to the request context.
func GetAdmin(c *gin.Context) (*models.Admin, bool) {
	value, exists := c.Get("admin")
	if !exists {
		return nil, false
	}

	admin, ok := value.(*models.Admin)
	return admin, ok
}

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthFormat
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

// apiError writes the `{message, status}` error body every endpoint uses.
// This is the exact shape the client's error resolution parses.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message, "status": status})
	c.Abort()
}

func respondWithError(c *gin.Context, log zerolog.Logger, status int, err error, message string) {
	log.Warn().Err(err).Msg(message)
	apiError(c, status, message)
}

// BearerAuthMiddleware validates bearer JWTs and loads the admin they belong to.
func BearerAuthMiddleware(db *gorm.DB, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			var message string
			switch err {
			case ErrMissingAuthHeader:
				message = "Missing authorization header"
			case ErrInvalidAuthFormat:
				message = "Invalid authorization header format"
			case ErrEmptyToken:
				message = "Empty token"
			}
			respondWithError(c, log, http.StatusUnauthorized, err, message)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			respondWithError(c, log, http.StatusUnauthorized, ErrInvalidToken, "Invalid or expired token")
			return
		}

		var admin models.Admin
		if err := db.Where("id = ?", claims.AdminID).First(&admin).Error; err != nil {
			log.Error().Err(err).Str("admin_id", claims.AdminID).Msg("Admin not found")
			respondWithError(c, log, http.StatusUnauthorized, ErrAdminNotFound, "Admin not found")
			return
		}

		setAdmin(c, &admin)

		c.Next()
	}
}
