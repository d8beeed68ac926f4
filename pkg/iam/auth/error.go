package auth

import (
	"net/http"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeUnauthorized = ErrRegistry.Register("UNAUTHORIZED", errx.TypeUnauthorized, http.StatusUnauthorized, "Authentication required")
	CodeInvalidToken = ErrRegistry.Register("INVALID_TOKEN", errx.TypeUnauthorized, http.StatusUnauthorized, "Invalid or expired token")
	CodeForbidden    = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Insufficient role for this operation")
	CodeInvalidRole  = ErrRegistry.Register("INVALID_ROLE", errx.TypeValidation, http.StatusBadRequest, "Invalid role")
	CodeTokenFailed  = ErrRegistry.Register("TOKEN_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to issue token")
	CodeHashFailed   = ErrRegistry.Register("HASH_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to hash password")
)

func ErrUnauthorized() *errx.Error { return ErrRegistry.New(CodeUnauthorized) }
func ErrInvalidToken() *errx.Error { return ErrRegistry.New(CodeInvalidToken) }
func ErrForbidden() *errx.Error    { return ErrRegistry.New(CodeForbidden) }
func ErrInvalidRole() *errx.Error  { return ErrRegistry.New(CodeInvalidRole) }
func ErrTokenFailed() *errx.Error  { return ErrRegistry.New(CodeTokenFailed) }
func ErrHashFailed() *errx.Error   { return ErrRegistry.New(CodeHashFailed) }
