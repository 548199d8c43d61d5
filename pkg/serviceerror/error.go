package serviceerror

import (
	"fmt"
	"log/slog"
	"strings"
)

const errorName = "ServiceError"

// Error is an expected error state raised by a service. It carries a typed
// classification, diagnostic args and an instance id that correlates it with
// the error that caused it.
type Error struct {
	errorType  ErrorType
	args       []Arg
	cause      error
	instanceID string
}

// New returns an Error of type t with the given args.
func New(t ErrorType, args ...Arg) *Error {
	return Wrap(t, nil, args...)
}

// Wrap returns an Error of type t caused by cause. The instance id is taken
// from the nearest Error or RemoteError in the cause graph, if any.
func Wrap(t ErrorType, cause error, args ...Arg) *Error {
	return &Error{
		errorType:  t,
		args:       append([]Arg(nil), args...),
		cause:      cause,
		instanceID: InstanceID(cause),
	}
}

// Error includes every arg regardless of safety.
func (e *Error) Error() string {
	msg := e.LogMessage()
	if len(e.args) == 0 {
		return msg
	}

	var b strings.Builder
	b.WriteString(msg)
	b.WriteString(": {")
	for i, arg := range e.args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", arg.Name, arg.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// LogMessage returns the message without args.
func (e *Error) LogMessage() string {
	return errorName + ": " + string(e.errorType.code) + " (" + e.errorType.name + ")"
}

func (e *Error) Type() ErrorType    { return e.errorType }
func (e *Error) InstanceID() string { return e.instanceID }
func (e *Error) Unwrap() error      { return e.cause }

// Args returns a copy of all args.
func (e *Error) Args() []Arg { return append([]Arg(nil), e.args...) }

// SafeArgs returns only the args that may be logged.
func (e *Error) SafeArgs() []Arg {
	safe := make([]Arg, 0, len(e.args))
	for _, arg := range e.args {
		if arg.Safe {
			safe = append(safe, arg)
		}
	}
	return safe
}

// LogValue implements slog.LogValuer. Unsafe args are never emitted.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("message", e.LogMessage()),
		slog.String("error_instance_id", e.instanceID),
	}
	if safe := e.SafeArgs(); len(safe) > 0 {
		params := make([]slog.Attr, 0, len(safe))
		for _, arg := range safe {
			params = append(params, slog.Any(arg.Name, arg.Value))
		}
		attrs = append(attrs, slog.Attr{Key: "params", Value: slog.GroupValue(params...)})
	}
	return slog.GroupValue(attrs...)
}
