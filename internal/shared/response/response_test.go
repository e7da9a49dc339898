package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestError_EnvelopeCarriesTimestampAndDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid input", map[string]string{"email": "Email is required"})

	var body struct {
		Ok    bool `json:"ok"`
		Error struct {
			Code      string            `json:"code"`
			Message   string            `json:"message"`
			Details   map[string]string `json:"details"`
			Timestamp string            `json:"timestamp"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.Ok)
	assert.Equal(t, "INVALID_INPUT", body.Error.Code)
	assert.Equal(t, "Email is required", body.Error.Details["email"])
	assert.NotEmpty(t, body.Error.Timestamp)
}

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Success(c, http.StatusCreated, gin.H{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true,"data":{"id":"1"}}`, w.Body.String())
}
