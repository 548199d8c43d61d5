// Package useragent parses and formats the composite User-Agent strings that
// services attach to outbound requests.
//
// A user agent names the component that issued a request (the primary agent),
// optionally the node it ran on, and any intermediaries that relayed it
// (informational agents):
//
//	billing/1.4.2 (nodeId:billing-7f9c.eu-west-1) gateway/2.0.0 sdk/0.9.1
//
// # Model
//
// Agent is a validated name/version pair created with NewAgent. UserAgent is an
// immutable aggregate created with New or NewWithNodeID; AddAgent returns a new
// value and never modifies the receiver. Both are plain values and safe for
// concurrent use.
//
// # Parsing
//
// Parse and TryParse share one linear scanner. The scanner looks for the first
// name/version word anywhere in the input and treats it as the primary agent,
// skipping leading junk. A comment directly after the primary agent may carry
// the node id as (nodeId:<id>); any other comment is recognised and discarded.
// Every later name/version word with a valid version becomes an informational
// agent. Malformed fragments are skipped, never reported.
//
// The two entry points differ only when no primary agent exists:
//
//	ua, err := useragent.Parse(header)   // err wraps ErrParse
//	ua := useragent.TryParse(header)     // returns unknown/0.0.0
//
// A primary agent whose version is not orderable keeps its name and gets the
// version 0.0.0. Informational agents with such versions are dropped.
//
// # Formatting
//
// Format produces the canonical wire form. Output of Format always parses back
// to an equal value once versions are valid, and reformatting parsed output is
// a no-op.
//
// # HTTP integration
//
// Middleware stores the best-effort parsed inbound agent in the request
// context, readable with FromContext. Transport stamps outbound requests and,
// with Relay set, forwards the inbound chain with this service appended.
// LoggerExtractor plugs the inbound agent into pkg/logger.
//
//	client := &http.Client{Transport: &useragent.Transport{
//		UserAgent: useragent.New(useragent.MustAgent("billing", "1.4.2")),
//		Relay:     true,
//	}}
//
// # Errors
//
// NewAgent fails with ErrInvalidName, NewWithNodeID with ErrInvalidNodeID and
// Parse with ErrParse. All are sentinels usable with errors.Is; the wrapped
// message quotes the offending value.
package useragent
