package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"go-ems/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestWithf_KeepsIdentity(t *testing.T) {
	base := apperror.New(apperror.CodeNotFound, "Department not found", http.StatusNotFound)

	derived := base.Withf("Department not found with id: %s", "42")
	wrapped := fmt.Errorf("lookup: %w", derived)

	assert.Equal(t, "Department not found with id: 42", derived.Error())
	assert.True(t, errors.Is(derived, base))
	assert.True(t, errors.Is(wrapped, base))
	assert.False(t, errors.Is(derived, apperror.ErrNotFound))
	assert.Equal(t, "Department not found", base.Message)
}

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its status and code", func(t *testing.T) {
		err := apperror.New(apperror.CodeConflict, "Employee with email already exists", http.StatusConflict)

		httpErr := apperror.ToHTTP(fmt.Errorf("create: %w", err))

		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, apperror.CodeConflict, httpErr.Code)
		assert.Equal(t, "Employee with email already exists", httpErr.Message)
	})

	t.Run("unknown error is opaque", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection reset by peer"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "connection reset")
	})
}

func TestIsUnexpected(t *testing.T) {
	assert.True(t, apperror.IsUnexpected(errors.New("boom")))
	assert.True(t, apperror.IsUnexpected(apperror.ErrInternal))
	assert.False(t, apperror.IsUnexpected(apperror.ErrNotFound))
}

type signup struct {
	FirstName string `json:"first_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	err := v.Struct(signup{Email: "not-an-email"})
	appErr := apperror.MapValidationError(err)

	assert.True(t, errors.Is(appErr, apperror.ErrInvalidInput))
	details, ok := appErr.Details.(map[string]string)
	assert.True(t, ok)
	assert.Equal(t, "First Name is required", details["first_name"])
	assert.Equal(t, "Email must be a valid email", details["email"])
}

func TestMapValidationError_MalformedBody(t *testing.T) {
	appErr := apperror.MapValidationError(errors.New("unexpected EOF"))

	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Contains(t, appErr.Details, "body")
}

type renameRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

func TestInit_NotBlank(t *testing.T) {
	apperror.Init()

	err := binding.Validator.ValidateStruct(renameRequest{Name: " \t "})
	appErr := apperror.MapValidationError(err)

	details, ok := appErr.Details.(map[string]string)
	assert.True(t, ok)
	assert.Equal(t, "Name must not be blank", details["name"])
	assert.NoError(t, binding.Validator.ValidateStruct(renameRequest{Name: "Ops"}))
}
