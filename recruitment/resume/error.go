package resume

import (
	"net/http"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

// Error codes - Resume Operations
var (
	CodeResumeNotFound     = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found")
	CodeInvalidResumeData  = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid resume data")
	CodeInvalidStatus      = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid resume status")
	CodeInvalidFeedback    = ErrRegistry.Register("INVALID_FEEDBACK", errx.TypeValidation, http.StatusBadRequest, "Feedback cannot be empty")
	CodeMissingContact     = ErrRegistry.Register("MISSING_CONTACT", errx.TypeValidation, http.StatusBadRequest, "Candidate has no email address")
	CodeAccessDenied       = ErrRegistry.Register("ACCESS_DENIED", errx.TypeAuthorization, http.StatusForbidden, "You do not have access to this resume")
	CodeInvalidFileFormat  = ErrRegistry.Register("INVALID_FILE_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Only PDF, DOC and DOCX files are allowed")
	CodeFileTooLarge       = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File exceeds the 10 MB limit")
	CodeFileNotFound       = ErrRegistry.Register("FILE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume file not found")
	CodeStorageFailed      = ErrRegistry.Register("STORAGE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store resume")
	CodeNotifyFailed       = ErrRegistry.Register("NOTIFY_FAILED", errx.TypeExternal, http.StatusAccepted, "Saved, but the notification could not be sent")
	CodeExportFailed       = ErrRegistry.Register("EXPORT_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to export resumes")
	CodeQueueEnqueueFailed = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue notification")
	CodeQueueDequeueFailed = ErrRegistry.Register("QUEUE_DEQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to dequeue notification")
)

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrInvalidResumeData() *errx.Error {
	return ErrRegistry.New(CodeInvalidResumeData)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidFeedback() *errx.Error {
	return ErrRegistry.New(CodeInvalidFeedback)
}

func ErrMissingContact() *errx.Error {
	return ErrRegistry.New(CodeMissingContact)
}

func ErrAccessDenied() *errx.Error {
	return ErrRegistry.New(CodeAccessDenied)
}

func ErrInvalidFileFormat() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileFormat)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrFileNotFound() *errx.Error {
	return ErrRegistry.New(CodeFileNotFound)
}

func ErrStorageFailed() *errx.Error {
	return ErrRegistry.New(CodeStorageFailed)
}

func ErrNotifyFailed() *errx.Error {
	return ErrRegistry.New(CodeNotifyFailed)
}

// IsNotifyFailure reports a committed mutation whose notification failed.
// Callers still receive the saved record alongside this error.
func IsNotifyFailure(err error) bool {
	return errx.IsCode(err, CodeNotifyFailed)
}
