// Package main is shellctl, a command-line client for the shell server.
//
// Usage:
//
//	shellctl pinned
//	shellctl pin camera-app 0
//	shellctl -addr http://device:8000 results 2
package main
