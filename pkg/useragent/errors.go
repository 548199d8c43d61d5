package useragent

import "errors"

var (
	// ErrInvalidName is returned when an agent name contains characters outside [A-Za-z0-9.-].
	ErrInvalidName = errors.New("illegal agent name format")
	// ErrInvalidNodeID is returned when a node id does not match the node id grammar.
	ErrInvalidNodeID = errors.New("illegal node id format")
	// ErrParse is returned by Parse when no primary agent can be located in the input.
	ErrParse = errors.New("failed to parse user agent string")
)
