// Package shell owns the launcher and scopes view-models of a running shell.
//
// The models are single-threaded. Shell runs them on a Loop and exposes
// context-aware methods that marshal each call onto it; lifecycle events
// from the application manager are posted to the same loop.
//
//	s, err := shell.New(cfg, catalog, apps, metrics, logger)
//	go s.Run(ctx)
//	err = s.Pin(ctx, "camera-app", -1)
package shell
