package startup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"playlist-manager/internal/logging"

	"github.com/gorilla/mux"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
	if info.OS == "" || info.Arch == "" {
		t.Error("Expected OS and Arch to be set")
	}
}

// =============================================================================
// Configuration Tests
// =============================================================================

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(map[string]string{})
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MetricsPort != "9090" {
		t.Errorf("MetricsPort = %q, want 9090", cfg.MetricsPort)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
	if cfg.OEmbedEndpoint != "https://soundcloud.com/oembed" {
		t.Errorf("OEmbedEndpoint = %q", cfg.OEmbedEndpoint)
	}
	if cfg.OEmbedTimeout != 10*time.Second {
		t.Errorf("OEmbedTimeout = %v, want 10s", cfg.OEmbedTimeout)
	}
	if cfg.PersistDelay != 0 {
		t.Errorf("PersistDelay = %v, want 0", cfg.PersistDelay)
	}
	if !filepath.IsAbs(cfg.DatabaseDir) {
		t.Errorf("DatabaseDir should be absolute, got %q", cfg.DatabaseDir)
	}
	if cfg.DatabasePath != filepath.Join(cfg.DatabaseDir, "playlists.db") {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	cfg, err := ParseConfig(map[string]string{
		"PORT":            "3000",
		"METRICS_ENABLED": "false",
		"DATABASE_DIR":    dir,
		"PERSIST_DELAY":   "250ms",
		"EMBED_WORKERS":   "4",
		"LOG_LEVEL":       "debug",
	})
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled should be false")
	}
	if cfg.DatabasePath != filepath.Join(dir, "playlists.db") {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.PersistDelay != 250*time.Millisecond {
		t.Errorf("PersistDelay = %v, want 250ms", cfg.PersistDelay)
	}
	if cfg.EmbedWorkers != 4 {
		t.Errorf("EmbedWorkers = %d, want 4", cfg.EmbedWorkers)
	}
	if opts := cfg.LogOptions(); opts.Level != logging.LevelDebug {
		t.Errorf("LogOptions().Level = %v, want debug", opts.Level)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "Bad duration", env: map[string]string{"OEMBED_TIMEOUT": "soon"}},
		{name: "Zero timeout", env: map[string]string{"OEMBED_TIMEOUT": "0s"}},
		{name: "Negative delay", env: map[string]string{"PERSIST_DELAY": "-1s"}},
		{name: "Negative workers", env: map[string]string{"EMBED_WORKERS": "-2"}},
		{name: "Bad bool", env: map[string]string{"METRICS_ENABLED": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig(tt.env); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// =============================================================================
// Helper Tests
// =============================================================================

func TestEnsureDirectory(t *testing.T) {
	base := t.TempDir()

	nested := filepath.Join(base, "a", "b")
	if err := ensureDirectory(nested, "database"); err != nil {
		t.Fatalf("ensureDirectory failed: %v", err)
	}
	if info, err := os.Stat(nested); err != nil || !info.IsDir() {
		t.Fatalf("expected directory to be created, err=%v", err)
	}

	file := filepath.Join(base, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ensureDirectory(file, "database"); err == nil {
		t.Error("expected error for regular file")
	}
}

func TestTestWriteAccess(t *testing.T) {
	dir := t.TempDir()
	if err := testWriteAccess(dir); err != nil {
		t.Fatalf("testWriteAccess failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write-test")); !os.IsNotExist(err) {
		t.Error("write test file should be removed")
	}
}

func TestRouteGroup(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/playlists", "api"},
		{"/api/playlists/{id}/select", "api"},
		{"/bookmarklet.html", "pages"},
		{"/", "pages"},
		{"/health", "probes"},
		{"/version", "probes"},
		{"/ws", "live"},
		{"/static/", "assets"},
	}

	for _, tt := range tests {
		if got := routeGroup(tt.path); got != tt.want {
			t.Errorf("routeGroup(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestGetRoutes(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/playlists", nil).Methods("GET", "POST")
	r.HandleFunc("/ws", nil)

	routes, err := GetRoutes(r)
	if err != nil {
		t.Fatalf("GetRoutes failed: %v", err)
	}
	if len(routes) != 3 {
		t.Fatalf("expected 3 routes, got %d: %+v", len(routes), routes)
	}
	if routes[2].Method != "*" || routes[2].Path != "/ws" {
		t.Errorf("unexpected route without methods: %+v", routes[2])
	}
}
