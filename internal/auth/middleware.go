package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/seyitm/baby-ai/internal/config"
)

// Middleware extracts the bearer token, validates it through the provider and
// stores both the resolved user and the raw token on the request context. The
// raw token is what gets forwarded to the record store for row-level security.
func Middleware(provider Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			var user any
			var err error
			if cfg.Env == "development" {
				user, err = provider.ValidateTokenLocal(token)
			} else {
				user, err = provider.ValidateTokenRemote(c.Request.Context(), token)
			}
			if err == nil {
				c.Set("user", user)
				c.Set("token", token)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}
