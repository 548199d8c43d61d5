// Package api exposes user agent parsing, formatting and per-agent request
// statistics over HTTP.
//
// Successful responses are wrapped as {"data": ...}. Failures are rendered as
// serviceerror.SerializableError with the status of the error's code, so a
// client can rebuild them with serviceerror.NewRemoteError.
package api
