package ranger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/resp"
	"github.com/xy-planning-network/relay/http/router"
	"github.com/xy-planning-network/relay/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRouter is an example of the second.
// An unexported field on the passed in *Ranger
// is updated only when the closure it returns is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithConfig replaces the relay.Config read from the environment.
func WithConfig(cfg relay.Config) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if err := cfg.Env.Valid(); err != nil {
			return nil, fmt.Errorf("%w: environment %q", err, cfg.Env)
		}

		if cfg.BaseURL == nil {
			return nil, fmt.Errorf("%w: missing base URL", relay.ErrNotValid)
		}

		rng.cfg = cfg
		rng.debug(fmt.Sprintf("using env %s", cfg.Env))

		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the relay app.
// Guide stops once it is done.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx = ctx
		rng.debug(fmt.Sprintf("using context %T", ctx))

		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the relay app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if l == nil {
			return nil, fmt.Errorf("%w: nil logger", relay.ErrNotValid)
		}

		rng.l = l
		rng.debug(fmt.Sprintf("using logger %T", l))

		return nil, nil
	}
}

// WithMetadataCache exposes the resp.MetadataCache files are described through.
// It only affects the default responder.
func WithMetadataCache(c resp.MetadataCache) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.cache = c
		rng.debug(fmt.Sprintf("using metadata cache %T", c))

		return nil, nil
	}
}

// WithResponder constructs a followup option that, when called,
// exposes the *resp.Responder to the relay app.
func WithResponder(r *resp.Responder) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			if r == nil {
				return fmt.Errorf("%w: nil responder", relay.ErrNotValid)
			}

			rng.Responder = r
			rng.debug("using responder")

			return nil
		}, nil
	}
}

// WithRouter constructs a followup option that, when called,
// exposes the *router.Router to the relay app.
func WithRouter(r *router.Router) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			if r == nil {
				return fmt.Errorf("%w: nil router", relay.ErrNotValid)
			}

			rng.Router = r
			if rng.srv != nil {
				rng.srv.Handler = r
			}

			rng.debug(fmt.Sprintf("using router %T", r))

			return nil
		}, nil
	}
}

// WithServer exposes the *http.Server to the relay app.
// Guide points its Handler at the app's router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if s == nil {
			return nil, fmt.Errorf("%w: nil server", relay.ErrNotValid)
		}

		rng.srv = s
		rng.debug(fmt.Sprintf("using server at %s", s.Addr))

		return nil, nil
	}
}

func (rng *Ranger) debug(msg string) {
	if rng.l != nil {
		rng.l.Debug(msg, nil)
	}
}
