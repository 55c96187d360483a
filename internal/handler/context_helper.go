package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AskKenImani/school-backend/internal/middleware"
	"github.com/AskKenImani/school-backend/internal/models"
)

// claimsFromContext returns the authenticated caller's claims, or nil when
// the request passed through without the JWT middleware.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		return nil
	}
	if claims, ok := value.(*models.JWTClaims); ok {
		return claims
	}
	return nil
}
