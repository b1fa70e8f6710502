package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AIABHISHEK/task-management-api/utils"
)

const bearerPrefix = "Bearer "

// AuthMiddleware gates every task and subtask route. A missing token is a
// 401; a malformed, badly signed or expired one is a 400. The split is
// deliberate and matches the existing API contract.
func AuthMiddleware(tokens *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access Denied"})
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid Token"})
			return
		}

		c.Set("uid", claims.UserID)
		c.Next()
	}
}
