package middleware

import (
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/relay"
)

// ReportPanic recovers panics raised by handlers and reports them to Sentry,
// waiting for delivery before the goroutine moves on.
//
// In development, NoopAdapter returns so panics surface in the terminal as usual.
func ReportPanic(env relay.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return sh.Handle
}
