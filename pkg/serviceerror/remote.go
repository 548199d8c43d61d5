package serviceerror

import (
	"fmt"
	"maps"
	"sort"
	"strings"
)

// SerializableError is the JSON body a service returns for an Error.
type SerializableError struct {
	ErrorCode       Code              `json:"errorCode"`
	ErrorName       string            `json:"errorName"`
	ErrorInstanceID string            `json:"errorInstanceId"`
	Parameters      map[string]string `json:"parameters,omitempty"`
}

// ToSerializable converts e for transmission. Every arg is included and
// rendered with fmt's %v verb.
func ToSerializable(e *Error) SerializableError {
	body := SerializableError{
		ErrorCode:       e.errorType.code,
		ErrorName:       e.errorType.name,
		ErrorInstanceID: e.instanceID,
	}
	if len(e.args) > 0 {
		body.Parameters = make(map[string]string, len(e.args))
		for _, arg := range e.args {
			body.Parameters[arg.Name] = fmt.Sprint(arg.Value)
		}
	}
	return body
}

// RemoteError is an error received from another service.
type RemoteError struct {
	body   SerializableError
	status int
}

// NewRemoteError wraps a decoded error body and the HTTP status it arrived with.
func NewRemoteError(body SerializableError, status int) *RemoteError {
	body.Parameters = maps.Clone(body.Parameters)
	return &RemoteError{body: body, status: status}
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "RemoteError: %s (%s) with instance ID %s", e.body.ErrorCode, e.body.ErrorName, e.body.ErrorInstanceID)
	if len(e.body.Parameters) > 0 {
		keys := make([]string, 0, len(e.body.Parameters))
		for k := range e.body.Parameters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(": {")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k + "=" + e.body.Parameters[k])
		}
		b.WriteByte('}')
	}
	return b.String()
}

func (e *RemoteError) Body() SerializableError {
	body := e.body
	body.Parameters = maps.Clone(e.body.Parameters)
	return body
}

func (e *RemoteError) Status() int        { return e.status }
func (e *RemoteError) InstanceID() string { return e.body.ErrorInstanceID }
