// Package logging decouples the extraction pipeline from the logging
// framework. Components receive a Logger by constructor injection; the
// command layer decides which implementation backs it.
package logging

// Logger is the structured logger used throughout the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger that attaches err to every entry.
	WithError(err error) Logger
	// WithField returns a logger that attaches one field to every entry.
	WithField(key string, value interface{}) Logger
	// WithFields returns a logger that attaches fields to every entry.
	WithFields(fields ...Field) Logger

	// Fatal logs and exits the program.
	Fatal(msg string, fields ...Field)
	// Fatalf logs a formatted message and exits the program.
	Fatalf(msg string, args ...interface{})
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}
