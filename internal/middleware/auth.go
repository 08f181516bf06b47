package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shamiri-institute/supervisor-core/internal/models"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/jwt"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/response"
	"gorm.io/gorm"
)

const ContextKeySupervisorID = "supervisor_id"

// Auth returns a middleware that enforces JWT authentication and resolves
// the supervisor the token belongs to.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		supervisorID, err := ValidateToken(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeySupervisorID, supervisorID)
		c.Next()
	}
}

// ValidateToken validates a JWT and returns the authenticated supervisor id.
func ValidateToken(db *gorm.DB, rawToken string) (string, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return "", errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return "", err
	}

	var count int64
	if err := db.Model(&models.SupervisorModel{}).
		Where("id = ?", claims.SupervisorID).
		Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return "", errors.New("supervisor not found")
	}
	return claims.SupervisorID, nil
}

// CurrentSupervisorID extracts the authenticated supervisor ID from context.
func CurrentSupervisorID(c *gin.Context) string {
	v, _ := c.Get(ContextKeySupervisorID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentSupervisorID(c) != ""
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
