// Package logger builds *slog.Logger instances with functional options and
// injects request-scoped attributes pulled from context.Context.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result in LogHandlerDecorator, which runs every registered ContextExtractor
// on each record. Extractors come from the packages that own the context
// values, for example useragent.LoggerExtractor:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "agentd"),
//		logger.WithContextExtractors(useragent.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Helpers in attr.go (Error, RequestID, Agent, Component, ...) keep attribute
// keys consistent across the code base.
package logger
