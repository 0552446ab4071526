/*
Package router directs requests to the handlers answering them.

[Router] is a thin wrapper around [mux.Router].
A [Route] leverages a standardized data model when registering how requests should be routed:
a path and an HTTP method comprise it, and an [http.HandlerFunc] answers requests matching it.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

It is often the case that many routes for a web server share identical middleware stacks,
which aid in directing, redirecting, or adding contextual information to a request.
OnEveryRequest collects such a stack once, and HandleRoutes registers many logically associated Routes behind it.

ServeFiles exposes a directory through a [resp.Responder],
so the files in it are sent with entity tags, Last-Modified, and support for byte range requests:

	rp := resp.NewResponder()
	r := router.New(relay.Development, middleware.LogRequest(logger.New()))
	r.ServeFiles("/files", "/srv/files", rp)
*/
package router
