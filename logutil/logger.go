package logutil

import "log/slog"

// ComponentLogger is a slog.Logger scoped to one component of the program.
type ComponentLogger struct {
	slogger   *slog.Logger
	component string
}

// NewLogger derives a logger from the current global logger with a
// "component" attribute.
func NewLogger(component string) *ComponentLogger {
	return &ComponentLogger{
		slogger:   Logger().With("component", component),
		component: component,
	}
}

// WithOperation adds an "operation" attribute.
func (l *ComponentLogger) WithOperation(name string) *ComponentLogger {
	return l.WithFields("operation", name)
}

// WithFields adds alternating key-value pairs.
func (l *ComponentLogger) WithFields(fields ...any) *ComponentLogger {
	return &ComponentLogger{
		slogger:   l.slogger.With(fields...),
		component: l.component,
	}
}

// Component returns the component name.
func (l *ComponentLogger) Component() string {
	return l.component
}

func (l *ComponentLogger) Debug(msg string, args ...any) { l.slogger.Debug(msg, args...) }
func (l *ComponentLogger) Info(msg string, args ...any)  { l.slogger.Info(msg, args...) }
func (l *ComponentLogger) Warn(msg string, args ...any)  { l.slogger.Warn(msg, args...) }
func (l *ComponentLogger) Error(msg string, args ...any) { l.slogger.Error(msg, args...) }
