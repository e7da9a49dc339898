package departmenterrors

import (
	"go-ems/internal/shared/apperror"
	"net/http"
)

var (
	// ErrDepartmentNotFound is usually returned through Withf so the message
	// carries the missing id.
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)

	ErrDepartmentAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Department with name already exists",
		http.StatusConflict,
	)

	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
)

// NotFound returns ErrDepartmentNotFound with the id in its message.
func NotFound(id string) *apperror.AppError {
	return ErrDepartmentNotFound.Withf("Department not found with id: %s", id)
}
