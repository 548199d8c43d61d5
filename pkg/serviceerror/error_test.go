package serviceerror_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/servicekit/pkg/serviceerror"
)

func TestNewErrorType(t *testing.T) {
	t.Parallel()
	et, err := serviceerror.NewErrorType(serviceerror.InvalidArgument, "UserAgent:InvalidHeader")
	require.NoError(t, err)
	assert.Equal(t, serviceerror.InvalidArgument, et.Code())
	assert.Equal(t, "UserAgent:InvalidHeader", et.Name())
	assert.Equal(t, http.StatusBadRequest, et.HTTPStatus())

	for _, name := range []string{"", "Default", "default:Name", "Default:name", "Default:Invalid_Name", "A:B"} {
		_, err := serviceerror.NewErrorType(serviceerror.Internal, name)
		assert.ErrorIs(t, err, serviceerror.ErrInvalidErrorName, name)
	}

	_, err = serviceerror.NewErrorType("BOGUS", "Default:Bogus")
	assert.ErrorIs(t, err, serviceerror.ErrInvalidCode)

	assert.Panics(t, func() { serviceerror.MustErrorType(serviceerror.Internal, "bad") })
}

func TestCode_HTTPStatus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code     serviceerror.Code
		expected int
	}{
		{serviceerror.PermissionDenied, http.StatusForbidden},
		{serviceerror.InvalidArgument, http.StatusBadRequest},
		{serviceerror.NotFound, http.StatusNotFound},
		{serviceerror.Conflict, http.StatusConflict},
		{serviceerror.RequestEntityTooLarge, http.StatusRequestEntityTooLarge},
		{serviceerror.Internal, http.StatusInternalServerError},
		{serviceerror.CustomClient, http.StatusBadRequest},
		{"UNKNOWN", http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, tc.code.HTTPStatus())
		})
	}
}

func TestError_Messages(t *testing.T) {
	t.Parallel()
	err := serviceerror.New(serviceerror.DefaultInvalidArgument,
		serviceerror.SafeArg("field", "userAgent"),
		serviceerror.UnsafeArg("value", "foo|1.2.3"),
	)

	assert.Equal(t, "ServiceError: INVALID_ARGUMENT (Default:InvalidArgument): {field=userAgent, value=foo|1.2.3}", err.Error())
	assert.Equal(t, "ServiceError: INVALID_ARGUMENT (Default:InvalidArgument)", err.LogMessage())
	assert.Len(t, err.Args(), 2)
	assert.Equal(t, []serviceerror.Arg{serviceerror.SafeArg("field", "userAgent")}, err.SafeArgs())

	noArgs := serviceerror.New(serviceerror.DefaultInternal)
	assert.Equal(t, "ServiceError: INTERNAL (Default:Internal)", noArgs.Error())
}

func TestError_LogValueOmitsUnsafeArgs(t *testing.T) {
	t.Parallel()
	err := serviceerror.New(serviceerror.DefaultInvalidArgument,
		serviceerror.SafeArg("field", "userAgent"),
		serviceerror.UnsafeArg("value", "secret-token"),
	)

	var buf bytes.Buffer
	slog.New(slog.NewJSONHandler(&buf, nil)).Info("failed", slog.Any("error", err))

	out := buf.String()
	assert.Contains(t, out, `"field":"userAgent"`)
	assert.Contains(t, out, err.InstanceID())
	assert.NotContains(t, out, "secret-token")
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("boom")
	err := serviceerror.Wrap(serviceerror.DefaultInternal, fmt.Errorf("wrapped: %w", sentinel))
	assert.ErrorIs(t, err, sentinel)

	var target *serviceerror.Error
	require.ErrorAs(t, fmt.Errorf("outer: %w", err), &target)
	assert.Equal(t, serviceerror.DefaultInternal, target.Type())
}

type loopErr struct{ next error }

func (e *loopErr) Error() string { return "loop" }
func (e *loopErr) Unwrap() error { return e.next }

func TestInstanceID(t *testing.T) {
	t.Parallel()
	t.Run("fresh id without cause", func(t *testing.T) {
		a := serviceerror.New(serviceerror.DefaultInternal)
		b := serviceerror.New(serviceerror.DefaultInternal)
		_, err := uuid.Parse(a.InstanceID())
		require.NoError(t, err)
		assert.NotEqual(t, a.InstanceID(), b.InstanceID())
	})

	t.Run("reuses direct cause id", func(t *testing.T) {
		cause := serviceerror.New(serviceerror.DefaultNotFound)
		err := serviceerror.Wrap(serviceerror.DefaultInternal, cause)
		assert.Equal(t, cause.InstanceID(), err.InstanceID())
	})

	t.Run("reuses id deep in chain", func(t *testing.T) {
		cause := serviceerror.New(serviceerror.DefaultNotFound)
		chain := fmt.Errorf("a: %w", fmt.Errorf("b: %w", cause))
		assert.Equal(t, cause.InstanceID(), serviceerror.Wrap(serviceerror.DefaultInternal, chain).InstanceID())
	})

	t.Run("follows joined errors", func(t *testing.T) {
		cause := serviceerror.New(serviceerror.DefaultConflict)
		joined := errors.Join(errors.New("first"), cause)
		assert.Equal(t, cause.InstanceID(), serviceerror.InstanceID(joined))
	})

	t.Run("reuses remote id", func(t *testing.T) {
		remote := serviceerror.NewRemoteError(serviceerror.SerializableError{
			ErrorCode:       serviceerror.NotFound,
			ErrorName:       "Default:NotFound",
			ErrorInstanceID: "remote-id",
		}, http.StatusNotFound)
		assert.Equal(t, "remote-id", serviceerror.Wrap(serviceerror.DefaultInternal, remote).InstanceID())
	})

	t.Run("cycle terminates", func(t *testing.T) {
		a := &loopErr{}
		b := &loopErr{next: a}
		a.next = b
		id := serviceerror.InstanceID(a)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})
}

func TestSerializable(t *testing.T) {
	t.Parallel()
	err := serviceerror.New(serviceerror.DefaultInvalidArgument,
		serviceerror.SafeArg("userAgent", "foo|1.2.3"),
		serviceerror.UnsafeArg("count", 3),
	)
	body := serviceerror.ToSerializable(err)
	assert.Equal(t, serviceerror.InvalidArgument, body.ErrorCode)
	assert.Equal(t, "Default:InvalidArgument", body.ErrorName)
	assert.Equal(t, err.InstanceID(), body.ErrorInstanceID)
	assert.Equal(t, map[string]string{"userAgent": "foo|1.2.3", "count": "3"}, body.Parameters)

	remote := serviceerror.NewRemoteError(body, http.StatusBadRequest)
	assert.Equal(t, http.StatusBadRequest, remote.Status())
	assert.Equal(t, err.InstanceID(), remote.InstanceID())
	assert.Equal(t,
		"RemoteError: INVALID_ARGUMENT (Default:InvalidArgument) with instance ID "+err.InstanceID()+": {count=3, userAgent=foo|1.2.3}",
		remote.Error(),
	)

	got := remote.Body()
	got.Parameters["count"] = "4"
	assert.Equal(t, "3", remote.Body().Parameters["count"])
}
