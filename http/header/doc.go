/*
Package header holds the outbound header set of a response.

A [Set] keeps names in the order they were first written and matches them without regard to case.
Alongside plain Set, Add, Get, and Del, it composes the headers whose syntax is easy to get wrong:
Content-Type with a charset, Cache-Control from [CacheOptions],
and Content-Disposition with RFC 6266 filename handling.
*/
package header
