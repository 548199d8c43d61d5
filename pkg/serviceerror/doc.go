// Package serviceerror models expected service error states that cross
// process boundaries.
//
// An Error carries an ErrorType (a wire-stable Code plus a namespaced name),
// a list of named args and an instance id. Error() renders every arg so that
// plain loggers see full context; LogMessage and LogValue omit unsafe args
// for structured logs:
//
//	err := serviceerror.New(serviceerror.DefaultInvalidArgument,
//		serviceerror.SafeArg("field", "userAgent"),
//		serviceerror.UnsafeArg("value", raw),
//	)
//	log.Warn("bad request", slog.Any("error", err)) // value is not logged
//
// The instance id correlates errors across services. Wrap reuses the id of the
// nearest Error or RemoteError in the cause graph; a fresh UUID is generated
// only when none exists. Serialise errors with ToSerializable and rebuild them
// on the client with NewRemoteError.
package serviceerror
