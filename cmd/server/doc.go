// Package main is the entry point for the shell view-model server.
//
// The server owns the launcher and categories models and exposes them over
// a REST API and a websocket change stream.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -catalog /usr/share/shell/catalog
//
//	# Development mode (colored logs, debug level)
//	./server -dev -pinned dialer-app,camera-app
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
