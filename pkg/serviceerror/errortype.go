package serviceerror

import (
	"fmt"
	"regexp"
)

var errorNameRegex = regexp.MustCompile(`^([A-Z][a-z0-9]+)+:([A-Z][a-z0-9]+)+$`)

// ErrorType pairs a Code with a namespaced name such as "UserAgent:InvalidHeader".
type ErrorType struct {
	code Code
	name string
}

// Default error types, one per code.
var (
	DefaultPermissionDenied   = ErrorType{code: PermissionDenied, name: "Default:PermissionDenied"}
	DefaultInvalidArgument    = ErrorType{code: InvalidArgument, name: "Default:InvalidArgument"}
	DefaultNotFound           = ErrorType{code: NotFound, name: "Default:NotFound"}
	DefaultConflict           = ErrorType{code: Conflict, name: "Default:Conflict"}
	DefaultFailedPrecondition = ErrorType{code: FailedPrecondition, name: "Default:FailedPrecondition"}
	DefaultInternal           = ErrorType{code: Internal, name: "Default:Internal"}
	DefaultTimeout            = ErrorType{code: Timeout, name: "Default:Timeout"}
)

// NewErrorType validates name and returns an ErrorType.
func NewErrorType(code Code, name string) (ErrorType, error) {
	if !code.Valid() {
		return ErrorType{}, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	if !errorNameRegex.MatchString(name) {
		return ErrorType{}, fmt.Errorf("%w: %q", ErrInvalidErrorName, name)
	}
	return ErrorType{code: code, name: name}, nil
}

// MustErrorType is like NewErrorType but panics on invalid input.
func MustErrorType(code Code, name string) ErrorType {
	t, err := NewErrorType(code, name)
	if err != nil {
		panic(err)
	}
	return t
}

func (t ErrorType) Code() Code      { return t.code }
func (t ErrorType) Name() string    { return t.name }
func (t ErrorType) HTTPStatus() int { return t.code.HTTPStatus() }
