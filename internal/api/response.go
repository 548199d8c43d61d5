package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/servicekit/pkg/logger"
	"github.com/dmitrymomot/servicekit/pkg/serviceerror"
)

// envelope is the body of every successful response.
type envelope struct {
	Data any `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// respond writes data inside the envelope with status 200.
func respond(w http.ResponseWriter, r *http.Request, log *slog.Logger, data any) {
	if err := writeJSON(w, http.StatusOK, envelope{Data: data}); err != nil {
		log.WarnContext(r.Context(), "write response", logger.Error(err), logger.Component("api"))
	}
}

// respondError renders err as a SerializableError. Errors that are not
// service errors become Default:Internal so their text never reaches the
// caller.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var svcErr *serviceerror.Error
	if !errors.As(err, &svcErr) {
		svcErr = serviceerror.Wrap(serviceerror.DefaultInternal, err)
	}

	status := svcErr.Type().HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", slog.Any("error", svcErr), logger.Component("api"))
	} else {
		log.InfoContext(r.Context(), "request rejected", slog.Any("error", svcErr), logger.Component("api"))
	}

	if werr := writeJSON(w, status, serviceerror.ToSerializable(svcErr)); werr != nil {
		log.WarnContext(r.Context(), "write error response", logger.Error(werr), logger.Component("api"))
	}
}

// decode reads a JSON body of at most maxBodyBytes into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return serviceerror.Wrap(errBodyTooLarge, err, serviceerror.SafeArg("limit", tooLarge.Limit))
		}
		return serviceerror.Wrap(serviceerror.DefaultInvalidArgument, err, serviceerror.SafeArg("reason", "malformed request body"))
	}
	return nil
}
