// Package logger builds *slog.Logger instances for reflectkit tools and
// provides attribute helpers with consistent key names.
//
// New takes functional options selecting the output format (text or JSON),
// the minimum level, static attributes and context extractors. The returned
// handler is wrapped in LogHandlerDecorator, which adds attributes pulled from
// the record's context before delegating.
//
// Library packages never log by default: they accept an optional logger and
// fall back to Discard, so previously silent operations stay silent unless a
// caller opts in.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevel(logger.ParseLevel("debug")),
//	    logger.WithAttr(logger.Component("copy")),
//	)
//	log.Debug("field skipped", logger.Field("Secret"), logger.Reason(err))
package logger
