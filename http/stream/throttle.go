package stream

import (
	"context"

	"golang.org/x/time/rate"
)

// A throttledSink paces writes through a token bucket of bytes.
type throttledSink struct {
	Sink
	ctx     context.Context
	limiter *rate.Limiter
	expired bool
}

// Throttle wraps s so no more than bytesPerSecond reach it each second, on average.
// A bytesPerSecond of zero or less returns s unchanged.
//
// Writes block while the budget refills. They fail once ctx is done,
// or when ctx's deadline would pass before the budget refills;
// the returned Sink then reports Aborted.
func Throttle(ctx context.Context, s Sink, bytesPerSecond int) Sink {
	if bytesPerSecond <= 0 {
		return s
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return &throttledSink{Sink: s, ctx: ctx, limiter: rate.NewLimiter(rate.Limit(bytesPerSecond), bytesPerSecond)}
}

func (ts *throttledSink) Write(p []byte) (int, error) {
	var written int
	burst := ts.limiter.Burst()
	for len(p) > 0 {
		n := len(p)
		if n > burst {
			n = burst
		}

		if err := ts.limiter.WaitN(ts.ctx, n); err != nil {
			ts.expired = true
			return written, err
		}

		wrote, err := ts.Sink.Write(p[:n])
		written += wrote
		if err != nil {
			return written, err
		}

		p = p[n:]
	}

	return written, nil
}

func (ts *throttledSink) Aborted() bool {
	return ts.expired || ts.ctx.Err() != nil || ts.Sink.Aborted()
}
