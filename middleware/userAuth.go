package middleware

import (
	"net/http"
	"strings"

	"schedulit/utils"

	"github.com/gin-gonic/gin"
)

const jwtCookieName = "jwt_token"

// JWTAuthMiddleware authenticates the request from the session cookie the
// OAuth callback set, or a Bearer token for non-browser clients, and puts
// the user ID into the context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if cookie, err := c.Cookie(jwtCookieName); err == nil {
			tokenString = cookie
		}
		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Not authenticated",
			})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired session",
			})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
