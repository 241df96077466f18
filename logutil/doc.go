// Package logutil provides structured logging on top of log/slog.
//
// A single global logger is configured once, usually from the command's
// persistent flags, and components derive scoped loggers from it:
//
//	logutil.SetupLogger(debug, structured)
//
//	log := logutil.NewLogger("server").WithOperation("parse")
//	log.Debug("request", "input", input)
//
// Debug logging is enabled either by SetupLogger(true, ...) or by setting
// URLKIT_DEBUG=true in the environment.
//
// With structured=true records are written as JSON:
//
//	{"time":"2026-01-15T10:30:00Z","level":"INFO","msg":"listening","addr":":8080"}
//
// otherwise in slog's text format:
//
//	time=2026-01-15T10:30:00Z level=INFO msg=listening addr=:8080
package logutil
