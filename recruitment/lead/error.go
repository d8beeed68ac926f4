package lead

import (
	"net/http"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("LEAD")

// Error codes
var (
	CodeLeadNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Lead not found")
	CodeInvalidLeadData = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid lead data")
	CodeInvalidStatus   = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid lead status")
	CodeResumeNotFound  = ErrRegistry.Register("RESUME_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume to link was not found")
	CodeStorageFailed   = ErrRegistry.Register("STORAGE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store lead")
)

func ErrLeadNotFound() *errx.Error {
	return ErrRegistry.New(CodeLeadNotFound)
}

func ErrInvalidLeadData() *errx.Error {
	return ErrRegistry.New(CodeInvalidLeadData)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}
