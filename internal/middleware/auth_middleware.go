package middleware

import (
	"strings"

	"go-ems/internal/auth"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token (or access_token cookie) issued by
// the identity system and exposes the caller as "employee_id" and "role".
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		claims, err := auth.ParseAccessToken(tokenString, secret)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Abort(c, httpErr.Status, httpErr.Code, httpErr.Message)
			return
		}

		c.Set("employee_id", claims.EmployeeID)
		c.Set("role", claims.Role)
		c.Request = c.Request.WithContext(contextutil.WithEmployeeID(c.Request.Context(), claims.EmployeeID))

		c.Next()
	}
}
