/*
Package monitoring provides Prometheus metrics for the shell service.

# Overview

Each Metrics value owns its own registry so several shells (and tests) can
coexist in one process.

# Features

- HTTP request metrics (latency, throughput)
- View-model change metrics (structural changes by kind, data changes)
- Launcher size and results-cache builds
- WebSocket client gauge

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	metrics.RecordStructuralChange("launcher", "insert")
	metrics.SetLauncherItems(4)

Every recording method is safe to call on a nil *Metrics.
*/
package monitoring
