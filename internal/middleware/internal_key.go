package middleware

import (
	"crypto/subtle"

	autherrors "go-ems/internal/auth/errors"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const InternalAPIKeyHeader = "X-Internal-Api-Key"

// InternalAPIKey guards service-to-service routes with a shared key.
// An empty configured key rejects everything.
func InternalAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(InternalAPIKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			e := autherrors.ErrInvalidAPIKey
			response.Abort(c, e.HTTPStatus, e.Code, e.Message)
			return
		}
		c.Next()
	}
}
