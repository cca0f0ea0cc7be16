package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripmate/pkg/utils"
)

// JWTAuthMiddleware checks the bearer token against secret. With an empty
// secret every request passes, so local runs need no tokens.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {

	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("client_id", claims.Subject)
		c.Set("scope", claims.Scope)
		c.Next()
	}
}

// ScopeMiddleware requires the token scope set by JWTAuthMiddleware. It is a
// no-op when authentication is disabled.
func ScopeMiddleware(secret []byte, requiredScope string) gin.HandlerFunc {

	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}

		if c.GetString("scope") != requiredScope {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
