package agentstats

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/servicekit/pkg/logger"
)

const collectTimeout = 5 * time.Second

// Collector exports the counters of a Store as a Prometheus counter labelled
// by primary agent. The store is read on every scrape, so replicas sharing a
// RedisStore report the same totals.
type Collector struct {
	store    Store
	log      *slog.Logger
	requests *prometheus.Desc
}

// NewCollector returns a collector for store. Metric names are prefixed with
// namespace when it is not empty.
func NewCollector(store Store, namespace string, log *slog.Logger) *Collector {
	if log == nil {
		log = logger.Nop()
	}
	return &Collector{
		store: store,
		log:   log,
		requests: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "agent", "requests_total"),
			"Requests received per primary user agent.",
			[]string{"agent"},
			nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.requests
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	entries, err := c.store.Snapshot(ctx)
	if err != nil {
		c.log.Warn("failed to collect agent stats", logger.Error(err), logger.Component("agentstats"))
		ch <- prometheus.NewInvalidMetric(c.requests, err)
		return
	}
	for _, e := range entries {
		ch <- prometheus.MustNewConstMetric(c.requests, prometheus.CounterValue, float64(e.Count), e.Agent)
	}
}
