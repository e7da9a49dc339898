package rbac_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/domain"
	"go-ems/internal/rbac"
	"go-ems/internal/rbac/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := rbac.NewHandler(newService(t))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", role)
		c.Next()
	})
	r.POST("/rbac/enforce", h.Enforce)
	r.GET("/rbac/permissions/me", h.MyPermissions)
	return r
}

func TestHandler_Enforce(t *testing.T) {
	t.Run("uses the caller's role", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"resource":"employee","action":"read"}`))
		req.Header.Set("Content-Type", "application/json")

		newRouter(t, "MANAGER").ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var env struct {
			Data struct {
				Allowed bool `json:"allowed"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Data.Allowed)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		newRouter(t, "MANAGER").ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_MyPermissions(t *testing.T) {
	w := httptest.NewRecorder()

	newRouter(t, "MANAGER").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "employee:read")
}

func TestHandler_Enforce_ServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	svc.EXPECT().
		Enforce(domain.EnforceRequest{Role: "ADMIN", Resource: "employee", Action: "read"}).
		Return(false, errors.New("adapter down"))

	h := rbac.NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("role", "ADMIN") })
	r.POST("/rbac/enforce", h.Enforce)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"resource":" employee ","action":"read"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "adapter down")
}
