// Package app tracks application lifecycle and focus for the shell.
//
// The manager is the launcher's lifecycle source: every state or focus
// change is delivered to registered listeners as an Event, after the
// manager's lock is released.
//
// States:
//
//	starting -> running <-> suspended
//	any      -> stopped (the application is forgotten)
//
// Example Usage:
//
//	manager := app.NewManager(logger)
//	manager.OnEvent(func(ev app.Event) { ... })
//	manager.Start("camera-app")
//	manager.SetState("camera-app", app.StateRunning)
package app
