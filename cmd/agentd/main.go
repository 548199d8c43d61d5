// Command agentd serves user agent parsing and per-agent request statistics.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/servicekit/internal/api"
	"github.com/dmitrymomot/servicekit/pkg/agentstats"
	"github.com/dmitrymomot/servicekit/pkg/clientip"
	"github.com/dmitrymomot/servicekit/pkg/config"
	"github.com/dmitrymomot/servicekit/pkg/environment"
	"github.com/dmitrymomot/servicekit/pkg/httpserver"
	"github.com/dmitrymomot/servicekit/pkg/logger"
	"github.com/dmitrymomot/servicekit/pkg/requestid"
	"github.com/dmitrymomot/servicekit/pkg/useragent"
)

const serviceName = "agentd"

// version is set at build time with -ldflags "-X main.version=1.2.3".
var version = "0.0.0-dev"

type appConfig struct {
	Env       environment.Environment `env:"APP_ENV" envDefault:"development"`
	LogLevel  string                  `env:"LOG_LEVEL"`
	UserAgent useragent.UserAgent     `env:"SERVICE_USER_AGENT"`
	MaxAgents int                     `env:"AGENT_STATS_MAX_AGENTS" envDefault:"10000"`
	HTTP      httpserver.Config
	Redis     agentstats.RedisConfig
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	self := selfAgent(cfg.UserAgent)
	log.Info("starting", logger.Agent(self.String()))

	store, checks, closeStore, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		agentstats.NewCollector(store, serviceName, log),
	)

	router := api.NewRouter(api.Deps{
		Store:           store,
		Logger:          log,
		ReadinessChecks: checks,
		Metrics:         registry,
		Self:            self,
	})
	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, router)
}

func newLogger(cfg appConfig) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, serviceName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			useragent.LoggerExtractor(),
		),
	}
	if cfg.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...), nil
}

// selfAgent identifies this process. An explicit SERVICE_USER_AGENT wins;
// otherwise the build version is used with the host name as node id when
// the host name is a valid node id.
func selfAgent(configured useragent.UserAgent) useragent.UserAgent {
	if !configured.IsZero() {
		return configured
	}
	primary := useragent.MustAgent(serviceName, version)
	if host, err := os.Hostname(); err == nil {
		if ua, err := useragent.NewWithNodeID(primary, host); err == nil {
			return ua
		}
	}
	return useragent.New(primary)
}

func newStore(ctx context.Context, cfg appConfig, log *slog.Logger) (agentstats.Store, []func(context.Context) error, func(), error) {
	if cfg.Redis.ConnectionURL == "" {
		log.Info("using in-memory agent stats", logger.Component("agentstats"))
		return agentstats.NewMemoryStore(agentstats.WithMaxAgents(cfg.MaxAgents)), nil, func() {}, nil
	}

	client, err := agentstats.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info("using redis agent stats", slog.String("key", cfg.Redis.Key), logger.Component("agentstats"))

	closeClient := func() {
		if err := client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			log.Warn("close redis client", logger.Error(err), logger.Component("agentstats"))
		}
	}
	checks := []func(context.Context) error{agentstats.Healthcheck(client)}
	return agentstats.NewRedisStore(client, cfg.Redis.Key, agentstats.WithMaxAgents(cfg.MaxAgents)), checks, closeClient, nil
}
