/*

The resp package puts HTTP responses on the wire.

A Response carries a status, headers, cookies and either a buffered body or a stream.Producer.
Send moves it through its States against a Host:
an HTTPHost wrapping an http.ResponseWriter,
or a WireHost writing raw HTTP/1.x bytes to any io.Writer.

Variants build on Response:
- JSON encodes data, optionally wrapped for JSONP
- Redirect sends clients elsewhere
- File delivers a file, answering conditional and byte range requests
- NewStream, NewSSE, NewNDJSON and NewArchive write content as it is produced

A Responder offers all of these to HTTP handlers with an easy way to configure them application-wide.

*/
package resp
