package ranger

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/middleware"
	"github.com/xy-planning-network/relay/http/resp"
	"github.com/xy-planning-network/relay/http/router"
	"github.com/xy-planning-network/relay/logger"
)

const (
	// CORS defaults
	corsOriginEnvVar = "CORS_ORIGIN"

	// Rate limit defaults
	rateLimitEnvVar      = "RATE_LIMIT"
	defaultRateLimit     = 20
	rateLimitBurstEnvVar = "RATE_LIMIT_BURST"
	defaultRateBurst     = 40

	// Web server defaults
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 0
)

// defaultOpts configures a *Ranger from the environment.
// Each step only fills in what options passed to New have not.
func defaultOpts() []RangerOption {
	return []RangerOption{
		func(rng *Ranger) (OptFollowup, error) {
			rng.cfg = relay.NewConfig()

			return func() error {
				if rng.l == nil {
					rng.l = defaultLogger(rng.cfg)
				}

				if rng.srv == nil {
					rng.srv = defaultServer(rng.cfg)
				}

				if rng.cache == nil {
					c, err := defaultMetadataCache(rng.cfg)
					if err != nil {
						return err
					}

					rng.cache = c
				}

				if rng.Responder == nil {
					rng.Responder = defaultResponder(rng.cfg, rng.l, rng.cache)
				}

				if rng.Router == nil {
					rng.Router = defaultRouter(rng.cfg, rng.l, rng.Responder)
				}

				rng.srv.Handler = rng.Router
				return nil
			}, nil
		},
	}
}

// defaultLogger constructs a logger.Logger at the configured level,
// reporting to Sentry when SENTRY_DSN is set.
func defaultLogger(cfg relay.Config) logger.Logger {
	return logger.New(
		logger.WithEnv(cfg.Env.String()),
		logger.WithLevel(cfg.LogLevel),
		logger.WithSentry(cfg.SentryDsn),
	)
}

// defaultMetadataCache shares file metadata through Redis when REDIS_URL is set
// and otherwise keeps it in memory.
func defaultMetadataCache(cfg relay.Config) (resp.MetadataCache, error) {
	if cfg.RedisURL == "" {
		return resp.NewMemoryCache(cfg.MetadataTTL), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", relay.ErrNotValid, relay.RedisURLEnvVar, err)
	}

	return resp.NewRedisCache(opts, cfg.MetadataTTL), nil
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
func defaultResponder(cfg relay.Config, l logger.Logger, cache resp.MetadataCache) *resp.Responder {
	args := []resp.ResponderOptFn{
		resp.WithChunkSize(cfg.ChunkSize),
		resp.WithDownloadRate(cfg.DownloadRate),
		resp.WithETagStrategy(resp.ETagStrategy(cfg.ETagStrategy)),
		resp.WithLogger(l),
		resp.WithMetadataCache(cache),
		resp.WithRootUrl(cfg.BaseURL.String()),
	}

	return resp.NewResponder(args...)
}

// defaultMiddlewares lists the middleware.Adapter every request passes through, in order.
func defaultMiddlewares(cfg relay.Config, l logger.Logger, rp *resp.Responder) []middleware.Adapter {
	return []middleware.Adapter{
		middleware.ForceHTTPS(cfg.Env),
		middleware.RequestID(relay.RequestIDKey),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
		middleware.CORS(relay.EnvVarOrString(corsOriginEnvVar, "")),
		middleware.RateLimit(middleware.NewVisitors(
			float64(relay.EnvVarOrInt(rateLimitEnvVar, defaultRateLimit)),
			relay.EnvVarOrInt(rateLimitBurstEnvVar, defaultRateBurst),
		)),
		middleware.InjectResponder(rp, relay.ResponderKey),
	}
}

// defaultRouter constructs a [*router.Router] to be used by the web server.
//
// Requests matching no route are answered 404 Not Found through rp.
func defaultRouter(cfg relay.Config, l logger.Logger, rp *resp.Responder) *router.Router {
	mws := defaultMiddlewares(cfg, l, rp)
	route := router.New(cfg.Env, middleware.Compose(mws...))
	route.OnEveryRequest(mws...)
	route.HandleNotFound(func(wx http.ResponseWriter, rx *http.Request) {
		rp.Err(wx, rx, nil, resp.Code(http.StatusNotFound))
	})

	return route
}

// defaultServer constructs a default [*http.Server].
//
// Writes are not limited in time by default, so long downloads and streams are not cut off.
func defaultServer(cfg relay.Config) *http.Server {
	port := cfg.Port
	if port == "" {
		port = relay.DefaultPort
	}

	if port[0] != ':' {
		port = ":" + port
	}

	return &http.Server{
		Addr:         port,
		IdleTimeout:  relay.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  relay.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: relay.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}
