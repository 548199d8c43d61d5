package requestid

import "net/http"

// Transport forwards the request id found in the request context to the
// next service. Requests without one are sent unchanged.
type Transport struct {
	// Base performs the request. http.DefaultTransport is used when nil.
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	id := FromContext(req.Context())
	if id == "" || req.Header.Get(Header) == id {
		return base.RoundTrip(req)
	}

	out := req.Clone(req.Context())
	out.Header.Set(Header, id)
	return base.RoundTrip(out)
}
