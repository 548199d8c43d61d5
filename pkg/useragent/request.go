package useragent

import "net/http"

// HeaderName is the standard header carrying the user agent string.
const HeaderName = "User-Agent"

// HeaderReader exposes the first value of a request header.
type HeaderReader interface {
	FirstHeader(name string) (string, bool)
}

// HTTPHeader adapts http.Header to HeaderReader.
type HTTPHeader http.Header

// FirstHeader returns the first value stored under the canonical form of name.
func (h HTTPHeader) FirstHeader(name string) (string, bool) {
	values := http.Header(h).Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// TryParseRequest best-effort parses the User-Agent header of r.
// A nil reader or a missing header yields Unknown().
func TryParseRequest(r HeaderReader) UserAgent {
	if r == nil {
		return Unknown()
	}
	value, ok := r.FirstHeader(HeaderName)
	if !ok {
		return Unknown()
	}
	return TryParse(value)
}
