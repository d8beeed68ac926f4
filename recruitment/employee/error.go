package employee

import (
	"net/http"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("EMPLOYEE")

// Error codes
var (
	CodeEmployeeNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Employee not found")
	CodeEmployeeAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Employee already exists")
	CodeInvalidEmployeeData   = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid employee data")
	CodeInvalidRole           = ErrRegistry.Register("INVALID_ROLE", errx.TypeValidation, http.StatusBadRequest, "Employee role must be employee or hr")
	CodeStorageFailed         = ErrRegistry.Register("STORAGE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store employee")
)

func ErrEmployeeNotFound() *errx.Error {
	return ErrRegistry.New(CodeEmployeeNotFound)
}

func ErrEmployeeAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeEmployeeAlreadyExists)
}

func ErrInvalidEmployeeData() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmployeeData)
}

func ErrInvalidRole() *errx.Error {
	return ErrRegistry.New(CodeInvalidRole)
}
