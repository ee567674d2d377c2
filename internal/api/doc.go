// Package api is the HTTP transport to the Volt backend.
//
// The backend authenticates with an HTTP-only session cookie set by login
// and register. Client keeps it in a cookie jar and never exposes it; there
// is no token to read or persist.
//
// Every call goes through one request helper. Non-2xx responses become
// *Error carrying the status and the server's "error" message. A 401 from
// any endpoint fires the OnUnauthorized hook before the error is returned,
// which is how the session is dropped when the cookie expires.
//
// Calls are not retried.
package api
