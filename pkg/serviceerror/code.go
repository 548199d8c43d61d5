package serviceerror

import "net/http"

// Code is the coarse, wire-stable classification of a service error.
type Code string

const (
	PermissionDenied      Code = "PERMISSION_DENIED"
	InvalidArgument       Code = "INVALID_ARGUMENT"
	NotFound              Code = "NOT_FOUND"
	Conflict              Code = "CONFLICT"
	RequestEntityTooLarge Code = "REQUEST_ENTITY_TOO_LARGE"
	FailedPrecondition    Code = "FAILED_PRECONDITION"
	Internal              Code = "INTERNAL"
	Timeout               Code = "TIMEOUT"
	CustomClient          Code = "CUSTOM_CLIENT"
	CustomServer          Code = "CUSTOM_SERVER"
)

var codeStatus = map[Code]int{
	PermissionDenied:      http.StatusForbidden,
	InvalidArgument:       http.StatusBadRequest,
	NotFound:              http.StatusNotFound,
	Conflict:              http.StatusConflict,
	RequestEntityTooLarge: http.StatusRequestEntityTooLarge,
	FailedPrecondition:    http.StatusInternalServerError,
	Internal:              http.StatusInternalServerError,
	Timeout:               http.StatusInternalServerError,
	CustomClient:          http.StatusBadRequest,
	CustomServer:          http.StatusInternalServerError,
}

// HTTPStatus returns the status code a server responds with for c.
// Unknown codes map to 500.
func (c Code) HTTPStatus() int {
	if status, ok := codeStatus[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Valid reports whether c is one of the known codes.
func (c Code) Valid() bool {
	_, ok := codeStatus[c]
	return ok
}
