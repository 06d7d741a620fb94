// Package config provides 12-factor configuration for the shell service.
//
// Configuration is loaded from environment variables with defaults. CLI
// flags in cmd/server override the listen address.
//
// Configuration Sections:
//   - Server: HTTP listen address and shutdown grace period
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting
//   - Launcher: catalog location, default pins, recents and ranking
//   - Scopes: synthesized categories and the applications category
//   - WS: change-stream buffering
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - SHELL_CATALOG_DIR, SHELL_CATALOG_PATTERN, SHELL_PINNED,
//     SHELL_RECENT_LIMIT, SHELL_RANK_BY_POPULARITY, SHELL_SEARCH_CACHE_SIZE
//   - SHELL_CATEGORIES, SHELL_RESULTS_PER_CATEGORY, SHELL_APPS_CATEGORY
//   - WS_SEND_BUFFER
package config
