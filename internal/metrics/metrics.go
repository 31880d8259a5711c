package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_manager_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playlist_manager_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playlist_manager_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Store metrics
var (
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_manager_store_operations_total",
			Help: "Total number of key-value store operations",
		},
		[]string{"operation", "status"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playlist_manager_store_operation_duration_seconds",
			Help:    "Key-value store operation duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	StoreBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "playlist_manager_store_value_bytes",
			Help: "Size in bytes of the last value written per key",
		},
		[]string{"key"},
	)
)

// Playlist metrics
var (
	PlaylistMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_manager_playlist_mutations_total",
			Help: "Total number of playlist collection mutations",
		},
		[]string{"operation"},
	)

	PlaylistsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playlist_manager_playlists",
			Help: "Number of playlists in the collection",
		},
	)

	TracksTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playlist_manager_tracks",
			Help: "Number of tracks across all playlists",
		},
	)

	PersistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlist_manager_persist_failures_total",
			Help: "Total number of playlist writes that failed",
		},
	)
)

// Embed metrics
var (
	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_manager_validations_total",
			Help: "Total number of track URL validations",
		},
		[]string{"result"},
	)

	EmbedLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_manager_embed_loads_total",
			Help: "Total number of player embed loads",
		},
		[]string{"result"},
	)

	OEmbedRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playlist_manager_oembed_request_duration_seconds",
			Help:    "oEmbed request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Live metrics
var (
	LiveClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playlist_manager_live_clients",
			Help: "Number of connected websocket clients",
		},
	)

	LiveMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_manager_live_messages_total",
			Help: "Total number of websocket messages",
		},
		[]string{"direction"},
	)

	LiveDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlist_manager_live_dropped_total",
			Help: "Total number of view operations dropped for slow clients",
		},
	)
)
