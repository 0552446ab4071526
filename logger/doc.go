/*
Package logger provides logging functionality to a relay app by defining the required behavior in [Logger]
and providing an implementation of it with [RelayLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
[RelayLogger] accepts a [LogLevel] and only emits messages at or above that level.
For example, if initialized with [LogLevelWarn],
only [*RelayLogger.Warn], [*RelayLogger.Error], and [*RelayLogger.Fatal] produce messages.

# RelayLogger

Log messages emitted by [RelayLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2026/04/28 15:55:21 [WARN] resp/responder.go:212 'stream aborted' log_context: {"data":{"written":8192}}

The log context is a JSON-encoded [*LogContext].
It carries data inessential to the message proper,
like the request being served and how many bytes reached the client.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.
*/
package logger
