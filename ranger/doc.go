/*
Package ranger initializes and manages a relay app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New].
It exposes the [*resp.Responder] handlers answer with
and the [*router.Router] routes are registered on.

[*Ranger.Guide] begins a relay app's web server.
By default, [*Ranger.Guide] listens on [relay.DefaultPort] (:3000),
assuming a reverse proxy terminates TLS in front of it.

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Cancel], by cancelling the context passed to [WithContext],
or by sending a signal [*Ranger.Guide] listens for.
Requests still being answered see their context cancelled,
so streams and downloads in flight stop at their next chunk.

# Configuration

A developer configures a relay app through environment variables, cf. [relay.NewConfig],
and by passing [RangerOption]s to [New].

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Beyond those read by [relay.NewConfig], these are available:
  - CORS_ORIGIN: the origin browsers may make cross-origin requests from; default: none
  - RATE_LIMIT: requests per second allowed from one IP address; default: 20
  - RATE_LIMIT_BURST: requests allowed at once from one IP address; default: 40
  - SERVER_IDLE_TIMEOUT: the timeout, as understood by [time.ParseDuration], for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout for writing HTTP responses; default: none, so long downloads are not cut off

When REDIS_URL is set, file metadata is cached in Redis and shared between instances.
Otherwise, it is cached in memory for METADATA_CACHE_TTL.
*/
package ranger
