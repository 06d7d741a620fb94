// Package server assembles the shell HTTP service: the view-model loop, the
// REST handlers, the change stream and the middleware around them.
package server
