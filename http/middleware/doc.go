/*
The middleware package defines what a middleware is in relay and a set of basic middlewares.

The available middlewares are:
- CORS
- ForceHTTPS
- InjectIPAddress
- InjectResponder
- LogRequest
- NoStore
- RateLimit
- ReportPanic
- RequestID

Middlewares wrapping the http.ResponseWriter expose the original through Unwrap,
so resp.HTTPHost can still flush streamed responses and see whether headers went out.

ranger assembles a default chain; to compose one by hand, the following can be copy-pasted:

	vs := middleware.NewVisitors(5, 20)
	adpts := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.InjectIPAddress(),
		middleware.RequestID(relay.RequestIDKey),
		middleware.LogRequest(log),
		middleware.CORS(baseURL),
		middleware.InjectResponder(responder, relay.ResponderKey),
	}

*/
package middleware
