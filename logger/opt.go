package logger

import (
	"io"
	"log"
)

// A LoggerOptFn is a functional option configuring a RelayLogger when constructing a new one.
type LoggerOptFn func(*RelayLogger)

// WithEnv sets the environment RelayLogger is operating in.
func WithEnv(env string) LoggerOptFn {
	return func(l *RelayLogger) {
		l.env = env
	}
}

// WithLevel sets the log level RelayLogger uses.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *RelayLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger RelayLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *RelayLogger) {
		l.l = log
	}
}

// WithOutput points the RelayLogger at w, keeping the standard timestamp flags.
func WithOutput(w io.Writer) LoggerOptFn {
	return func(l *RelayLogger) {
		l.l = log.New(w, "", log.LstdFlags)
	}
}

// WithSentry forwards warnings and errors to Sentry using dsn.
// An empty dsn leaves Sentry disabled.
func WithSentry(dsn string) LoggerOptFn {
	return func(l *RelayLogger) {
		l.sentryDsn = dsn
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *RelayLogger) {
		l.skip = skip
	}
}
