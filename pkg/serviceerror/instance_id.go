package serviceerror

import (
	"reflect"

	"github.com/google/uuid"
)

// InstanceID returns the instance id of the first Error or RemoteError found
// in the cause graph of err, or a fresh random id if there is none.
// Both single and joined (Unwrap() []error) causes are followed depth first;
// errors already visited are skipped so cyclic chains terminate.
func InstanceID(err error) string {
	if id, ok := findInstanceID(err, make(map[error]struct{})); ok {
		return id
	}
	return uuid.NewString()
}

func findInstanceID(err error, seen map[error]struct{}) (string, bool) {
	if err == nil {
		return "", false
	}
	// Non-comparable errors cannot be map keys. A cycle always passes
	// through at least one pointer, which is comparable.
	if reflect.TypeOf(err).Comparable() {
		if _, ok := seen[err]; ok {
			return "", false
		}
		seen[err] = struct{}{}
	}

	switch x := err.(type) {
	case *Error:
		return x.instanceID, true
	case *RemoteError:
		return x.body.ErrorInstanceID, true
	case interface{ Unwrap() error }:
		return findInstanceID(x.Unwrap(), seen)
	case interface{ Unwrap() []error }:
		for _, cause := range x.Unwrap() {
			if id, ok := findInstanceID(cause, seen); ok {
				return id, true
			}
		}
	}
	return "", false
}
