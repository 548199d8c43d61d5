package agentstats

import (
	"cmp"
	"context"
	"slices"

	"github.com/dmitrymomot/servicekit/pkg/useragent"
)

// Store counts requests per primary agent.
type Store interface {
	// Record increments the counter of ua's primary agent.
	Record(ctx context.Context, ua useragent.UserAgent) error
	// Snapshot returns all counters, highest first.
	Snapshot(ctx context.Context) ([]Entry, error)
	// Reset clears all counters.
	Reset(ctx context.Context) error
}

// DefaultMaxAgents is the number of distinct agents a store tracks unless
// WithMaxAgents says otherwise.
const DefaultMaxAgents = 10000

type storeOptions struct {
	limit int
}

// Option configures MemoryStore and RedisStore.
type Option func(*storeOptions)

// WithMaxAgents caps the number of distinct agents tracked. Recording a new
// agent beyond the cap fails with ErrTooManyAgents while known agents keep
// counting. Zero disables the cap.
func WithMaxAgents(n int) Option {
	return func(o *storeOptions) {
		o.limit = n
	}
}

func applyOptions(opts []Option) storeOptions {
	o := storeOptions{limit: DefaultMaxAgents}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Entry is a counter for a single primary agent rendered as name/version.
type Entry struct {
	Agent string `json:"agent"`
	Count int64  `json:"count"`
}

// key identifies a primary agent. The version is normalised the same way the
// wire format does, so garbage versions collapse into name/0.0.0.
func key(ua useragent.UserAgent) string {
	return useragent.Format(useragent.New(ua.Primary()))
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Agent, b.Agent)
	})
}
