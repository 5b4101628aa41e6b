// Package ratelimit provides an in-memory token bucket limiter with
// HTTP middleware. It throttles the unauthenticated auth endpoints to
// slow down credential stuffing and signup abuse; state is per-process
// and resets on restart.
package ratelimit
