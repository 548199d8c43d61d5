package useragent

import (
	"errors"
	"net/http"
)

// ErrNilTransportAgent is returned by Transport when it has no agent to send.
var ErrNilTransportAgent = errors.New("useragent: transport has no user agent configured")

// Transport is an http.RoundTripper that stamps outbound requests with a
// User-Agent header in canonical format.
type Transport struct {
	// Base performs the request. http.DefaultTransport is used when nil.
	Base http.RoundTripper
	// UserAgent identifies this service.
	UserAgent UserAgent
	// Relay, when set and the request context carries an inbound user agent,
	// forwards the inbound chain with this service's primary agent appended
	// as an informational agent.
	Relay bool
}

// RoundTrip implements http.RoundTripper. The caller's request is cloned, not mutated.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.UserAgent.IsZero() {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, ErrNilTransportAgent
	}

	ua := t.UserAgent
	if t.Relay {
		if inbound, ok := FromContext(req.Context()); ok {
			ua = inbound.AddAgent(t.UserAgent.primary)
		}
	}

	out := req.Clone(req.Context())
	out.Header.Set(HeaderName, Format(ua))

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(out)
}
