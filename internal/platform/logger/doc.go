// Package logger configures the application's structured JSON logging on
// top of log/slog and carries request-scoped loggers through the context,
// so handlers and stores log with the trace ID of the request they serve.
package logger
