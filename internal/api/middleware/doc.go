// Package middleware provides gin middleware for the shell API: CORS,
// request ids and rate limiting.
package middleware
