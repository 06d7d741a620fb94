// Package http exposes the shell view-models over a JSON REST API.
//
// Domain errors map to status codes: invalid rows and arguments to 400,
// unknown items to 404, unsupported operations to 501.
package http
