/*
Package conditional answers whether a request's validators still match a resource.

NotModified evaluates If-None-Match and If-Modified-Since;
a true result means the caller ought to reply 304 with no body.
RangeAllowed evaluates If-Range before a byte range is honored.

Neither function reads ambient request state: callers pass header values in,
or adapt an *http.Request with FromHTTP.
*/
package conditional
