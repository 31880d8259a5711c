// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// Configuration is read from environment variables (optionally seeded from a
// .env file in the working directory) via [LoadConfig]:
//
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - DATABASE_DIR: Directory holding the playlist store (default: ./data)
//   - OEMBED_ENDPOINT: oEmbed endpoint used to validate tracks (default: SoundCloud)
//   - OEMBED_TIMEOUT: Per-request oEmbed timeout (default: 10s)
//   - EMBED_WORKERS: Concurrent oEmbed lookups, 0 means 2 per CPU
//   - PERSIST_DELAY: Coalesce playlist writes for this long (default: 0, write every mutation)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_FILE: Optional log file, rotated by size
//   - LOG_STATIC_FILES: Log static file requests (default: false)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Lifecycle Logging
//
// [LogDatabaseInit], [LogPlaylistsLoaded], [LogHTTPRoutes], [LogServerStarted]
// and the shutdown helpers give every run the same sectioned log layout.
package startup
