package errx

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Type classifies an error independently of its domain code
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeUnauthorized  Type = "UNAUTHORIZED"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// defaultStatus maps a type to the HTTP status used when none is registered
func (t Type) defaultStatus() int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is the structured error carried across every layer
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// WithDetail adds a single key to the error details
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges the given map into the error details
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// ToHTTPResponse renders the error body sent to clients
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// New creates an unregistered error
func New(message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: t.defaultStatus(),
	}
}

// Wrap attaches a message and type to an arbitrary error. An *Error is
// returned unchanged so registered codes survive re-wrapping.
func Wrap(err error, message string, t Type) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return New(message, t).WithCause(err)
}

// As reports whether err is (or wraps) an *Error
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsType(err error, t Type) bool {
	e, ok := As(err)
	return ok && e.Type == t
}

func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code.String()
}

// ============================================================================
// Registry
// ============================================================================

// Code is a registered, fully qualified error code such as RESUME.NOT_FOUND
type Code string

func (c Code) String() string { return string(c) }

type definition struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error codes of one domain
type Registry struct {
	prefix string
	mu     sync.RWMutex
	defs   map[Code]definition
}

func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register declares a code. Registering the same code twice panics.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "." + code)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[full]; exists {
		panic("errx: duplicate error code " + full)
	}
	r.defs[full] = definition{errType: t, httpStatus: httpStatus, message: message}
	return full
}

// New builds a fresh error for a registered code
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()
	if !ok {
		return New("unregistered error code "+code.String(), TypeInternal)
	}
	return &Error{
		Code:       code.String(),
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

func (r *Registry) NewWithCause(code Code, cause error) *Error {
	return r.New(code).WithCause(cause)
}

func (r *Registry) NewWithMessage(code Code, message string) *Error {
	e := r.New(code)
	e.Message = message
	return e
}
