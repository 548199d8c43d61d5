// Package agentstats counts requests per primary agent so a service can tell
// which callers, at which versions, are talking to it.
//
// Two Store implementations are provided: MemoryStore for single instances and
// tests, and RedisStore which keeps counters in one Redis hash shared by all
// replicas. Middleware feeds a Store from the user agent parsed by
// useragent.Middleware:
//
//	r.Use(useragent.Middleware)
//	r.Use(agentstats.Middleware(store, log))
//
// Versions are normalised the way the wire format does it, so a caller that
// sends an unparseable version is counted as name/0.0.0.
//
// Collector exposes the same counters to Prometheus:
//
//	registry.MustRegister(agentstats.NewCollector(store, "agentd", log))
package agentstats
