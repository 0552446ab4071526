package resp_test

import (
	"bytes"
	"fmt"

	"github.com/xy-planning-network/relay/http/resp"
	"github.com/xy-planning-network/relay/http/stream/streamtest"
	"github.com/xy-planning-network/relay/logger"
)

// testHost records what a Response sends through it.
type testHost struct {
	streamtest.Recorder
	head  resp.Head
	heads int
}

func (h *testHost) HeadersSent() bool { return h.heads > 0 }

func (h *testHost) WriteHead(hd resp.Head) error {
	h.head = hd
	h.heads++
	return nil
}

type testLogger struct{ *bytes.Buffer }

func newLogger() testLogger                                  { return testLogger{new(bytes.Buffer)} }
func (tl testLogger) Debug(msg string, _ *logger.LogContext) { fmt.Fprint(tl, msg) }
func (tl testLogger) Error(msg string, _ *logger.LogContext) { fmt.Fprint(tl, msg) }
func (tl testLogger) Fatal(msg string, _ *logger.LogContext) { fmt.Fprint(tl, msg) }
func (tl testLogger) Info(msg string, _ *logger.LogContext)  { fmt.Fprint(tl, msg) }
func (tl testLogger) Warn(msg string, _ *logger.LogContext)  { fmt.Fprint(tl, msg) }
func (tl testLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }
