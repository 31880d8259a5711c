// Package main provides the entry point for the playlist manager.
//
// The playlist manager is a small self-hosted web application for collecting
// SoundCloud tracks into named playlists. All state lives in the server: the
// browser renders what the server sends over a websocket and reports clicks,
// edits and player events back. Every open page shows the same playlists.
//
// # Application Lifecycle
//
//  1. Configuration Loading: Reads .env and environment variables, prepares
//     the database directory
//  2. Database Initialization: Opens the SQLite key-value store
//  3. Playlist Loading: Restores the collection and establishes the selection
//  4. Component Initialization:
//     - oEmbed client: Validates track URLs and fetches player markup
//     - Live hub: Tracks connected browsers
//     - Application loop: Serializes every change to the views
//     - Metrics Collector: Publishes playlist and track totals
//  5. HTTP Server Setup: Configures routes and middleware, starts the servers
//  6. Graceful Shutdown: Handles SIGINT/SIGTERM and saves pending changes
//
// # HTTP Server
//
// The application runs two HTTP servers:
//
//  1. Main Server (default port 8080):
//     - The main page and the bookmarklet popup
//     - The JSON playlist API under /api
//     - The websocket at /ws
//     - Health checks (/health, /healthz, /livez, /readyz) and /version
//
//  2. Metrics Server (default port 9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//
// # Environment Variables
//
//   - PORT: Main HTTP server port (default: 8080)
//   - METRICS_PORT: Metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable metrics server (default: true)
//   - DATABASE_DIR: Directory for the SQLite database (default: ./data)
//   - OEMBED_ENDPOINT: oEmbed endpoint used for validation and players
//   - OEMBED_TIMEOUT: Timeout of one oEmbed request (default: 10s)
//   - EMBED_WORKERS: Concurrent oEmbed requests (default: derived from CPUs)
//   - PERSIST_DELAY: Coalesce playlist writes within this delay (default: 0)
//   - LOG_LEVEL: Logging level (debug/info/warn/error)
//   - LOG_FILE: Also write logs to this file, rotated by size
//
// # Graceful Shutdown
//
//  1. Stop accepting new HTTP requests
//  2. Shutdown metrics server (if running)
//  3. Disconnect browsers
//  4. Stop metrics collector and the application loop
//  5. Write pending playlist changes
//  6. Close the database
//
// # Build Requirements
//
// SQLite is accessed through cgo, so CGO_ENABLED=1 is required.
package main
