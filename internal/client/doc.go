// Package client is a typed client for the shell REST API, built on resty
// with retries for throttled and unavailable responses.
package client
