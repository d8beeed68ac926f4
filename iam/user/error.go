package user

import (
	"net/http"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("USER")

// Error codes
var (
	CodeUserNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeUserAlreadyExists  = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "User exists")
	CodeAdminExists        = ErrRegistry.Register("ADMIN_EXISTS", errx.TypeConflict, http.StatusConflict, "Admin exists")
	CodeInvalidUserData    = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid user data")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeUnauthorized, http.StatusUnauthorized, "Invalid credentials")
	CodeCannotDeleteSelf   = ErrRegistry.Register("CANNOT_DELETE_SELF", errx.TypeBusiness, http.StatusBadRequest, "You cannot delete your own account")
	CodeStorageFailed      = ErrRegistry.Register("STORAGE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store user")
)

func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}

func ErrUserAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeUserAlreadyExists)
}

func ErrAdminExists() *errx.Error {
	return ErrRegistry.New(CodeAdminExists)
}

func ErrInvalidUserData() *errx.Error {
	return ErrRegistry.New(CodeInvalidUserData)
}

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrCannotDeleteSelf() *errx.Error {
	return ErrRegistry.New(CodeCannotDeleteSelf)
}
