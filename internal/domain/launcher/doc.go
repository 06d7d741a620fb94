// Package launcher provides the launcher view model: the ordered strip of
// pinned, running and recent applications.
//
// Components:
//   - Item: one application entry with independently observable attributes
//   - QuickList: the per-item action list
//   - Model: the role-projected collection of items
//   - Policy methods on Model: Pin, Unpin, RequestRemove,
//     QuickListActionInvoked and ApplyAppEvent
//
// An item that is neither pinned, running nor recent is never left in the
// model. RequestRemove is the exception to every other rule: it removes the
// item even while the application is running, and the lifecycle source is
// expected to re-add it on its next running signal.
//
// Example Usage:
//
//	m := launcher.NewModel(launcher.Options{Resolver: catalog})
//	m.Pin("camera-app", launcher.NoIndex)
//	m.Move(3, 0)
//	m.RequestRemove("camera-app")
package launcher
