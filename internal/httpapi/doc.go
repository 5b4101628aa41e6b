// Package httpapi exposes the auth service over HTTP. Every operation
// is a JSON POST endpoint on a chi router; the refresh token travels
// in a signed HTTP-only cookie alongside the JSON body, and routes
// under /account require a bearer access token verified by the auth
// middleware.
package httpapi
