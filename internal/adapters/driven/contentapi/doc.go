// Package contentapi is the HTTP gateway to the site's content API.
//
// Every response is expected in an envelope of the form
// {"data": ..., "message": "..."}. Section saves are authenticated with the
// session's bearer token; reads and login are not.
//
// Requests are throttled by a token bucket and back off when the server
// answers 429 or 503 with a Retry-After header.
package contentapi
