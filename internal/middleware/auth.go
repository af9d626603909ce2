package middleware

import (
	"net/http"
	"strings"

	"github.com/01moynul/shop-backoffice/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	ShopIDKey = "shopID"
	TokenKey  = "token"
)

// AuthMiddleware checks the bearer token and stores the shop id and the raw
// token on the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Get Authorization Header ---
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			return
		}
		tokenString := parts[1]

		// 2. --- Validate Token ---
		shopID, err := auth.ValidateToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// 3. --- Success ---
		c.Set(ShopIDKey, shopID)
		c.Set(TokenKey, tokenString)
		c.Next()
	}
}
