// Package requestid propagates a correlation id across service hops.
//
// Middleware accepts a well-formed inbound X-Request-ID (at most 128 characters
// of letters, digits, '-' and '_') or generates a UUID, stores it in the
// request context and echoes it in the response. Transport copies the id from
// the context to outbound requests, so one id follows a call through every
// service it touches. LoggerExtractor adds the id to every log record written
// with a request context:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	client := &http.Client{Transport: &requestid.Transport{Base: &useragent.Transport{UserAgent: self}}}
package requestid
