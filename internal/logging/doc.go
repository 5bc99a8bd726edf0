// Package logging assembles structured slog loggers used across voicegate.
//
// It owns level and format plumbing, mirrors daemon output into the
// configured log directory, and decorates records with request correlation
// IDs carried on the context. A no-op logger is provided for tests and
// wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
