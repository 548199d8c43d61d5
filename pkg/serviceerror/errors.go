package serviceerror

import "errors"

var (
	ErrInvalidCode      = errors.New("unknown error code")
	ErrInvalidErrorName = errors.New("error name must be UpperCamel Namespace:Name")
)
