// Package metrics provides Prometheus instrumentation for the playlist manager.
//
// All metrics are prefixed with "playlist_manager_" and registered on the
// default registry through promauto, so importing the package is enough to
// export them.
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Store Metrics
//
//   - StoreOperationsTotal: Counter of key-value operations by operation and status
//   - StoreOperationDuration: Histogram of key-value operation duration
//   - StoreBytes: Gauge of the size of the last written value
//
// ## Playlist Metrics
//
//   - PlaylistMutationsTotal: Counter of collection mutations by operation
//   - PlaylistsTotal / TracksTotal: Gauges refreshed by [Collector]
//   - PersistFailuresTotal: Counter of playlist writes that failed
//
// ## Embed Metrics
//
//   - ValidationsTotal: Counter of track URL validations by result
//   - EmbedLoadsTotal: Counter of player embed loads by result
//   - OEmbedRequestDuration: Histogram of oEmbed request latency
//
// ## Live Metrics
//
//   - LiveClients: Gauge of connected websocket clients
//   - LiveMessagesTotal: Counter of websocket messages by direction
//   - LiveDroppedTotal: Counter of operations dropped for slow clients
package metrics
