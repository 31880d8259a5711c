package startup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"playlist-manager/internal/logging"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Config holds all application configuration
type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	MetricsPort    string `env:"METRICS_PORT" envDefault:"9090"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	DatabaseDir    string `env:"DATABASE_DIR" envDefault:"./data"`

	// OEmbedEndpoint is queried to validate track URLs and fetch player markup.
	OEmbedEndpoint string        `env:"OEMBED_ENDPOINT" envDefault:"https://soundcloud.com/oembed"`
	OEmbedTimeout  time.Duration `env:"OEMBED_TIMEOUT" envDefault:"10s"`
	EmbedWorkers   int           `env:"EMBED_WORKERS" envDefault:"0"`

	// PersistDelay coalesces playlist writes. Zero writes on every mutation.
	PersistDelay time.Duration `env:"PERSIST_DELAY" envDefault:"0s"`

	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile         string `env:"LOG_FILE"`
	LogMaxSizeMB    int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	LogMaxBackups   int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAgeDays   int    `env:"LOG_MAX_AGE" envDefault:"28"`
	LogStaticFiles  bool   `env:"LOG_STATIC_FILES" envDefault:"false"`
	LogHealthChecks bool   `env:"LOG_HEALTH_CHECKS" envDefault:"true"`

	// Derived paths
	DatabasePath string
}

// ParseConfig reads configuration from the given environment map. A nil map
// means the process environment.
func ParseConfig(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{Environment: environment}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Port == "" {
		return nil, errors.New("PORT must not be empty")
	}
	if cfg.OEmbedTimeout <= 0 {
		return nil, fmt.Errorf("OEMBED_TIMEOUT must be positive, got %v", cfg.OEmbedTimeout)
	}
	if cfg.PersistDelay < 0 {
		return nil, fmt.Errorf("PERSIST_DELAY must not be negative, got %v", cfg.PersistDelay)
	}
	if cfg.EmbedWorkers < 0 {
		return nil, fmt.Errorf("EMBED_WORKERS must not be negative, got %d", cfg.EmbedWorkers)
	}

	dir, err := filepath.Abs(cfg.DatabaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database directory path: %w", err)
	}
	cfg.DatabaseDir = dir
	cfg.DatabasePath = filepath.Join(dir, "playlists.db")

	return cfg, nil
}

// LogOptions converts the logging part of the configuration.
func (c *Config) LogOptions() logging.Options {
	level, ok := logging.ParseLevel(c.LogLevel)
	if !ok && c.LogLevel != "" {
		logging.Warn("  Invalid LOG_LEVEL %q, using info", c.LogLevel)
	}
	return logging.Options{
		Level:      level,
		File:       c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
	}
}

// LoadConfig loads an optional .env file, reads configuration from the
// environment and prepares the database directory.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config, err := ParseConfig(nil)
	if err != nil {
		return nil, err
	}

	if err := logging.Configure(config.LogOptions()); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  DATABASE_DIR:        %s", config.DatabaseDir)
	logging.Info("  PORT:                %s", config.Port)
	logging.Info("  METRICS_PORT:        %s", config.MetricsPort)
	logging.Info("  METRICS_ENABLED:     %v", config.MetricsEnabled)
	logging.Info("  OEMBED_ENDPOINT:     %s", config.OEmbedEndpoint)
	logging.Info("  OEMBED_TIMEOUT:      %s", config.OEmbedTimeout)
	logging.Info("  EMBED_WORKERS:       %d", config.EmbedWorkers)
	logging.Info("  PERSIST_DELAY:       %s", config.PersistDelay)
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())
	logging.Info("  LOG_FILE:            %s", valueOrDash(config.LogFile))
	logging.Info("  LOG_STATIC_FILES:    %v", config.LogStaticFiles)
	logging.Info("  LOG_HEALTH_CHECKS:   %v", config.LogHealthChecks)

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	if err := ensureDirectory(config.DatabaseDir, "database"); err != nil {
		return nil, fmt.Errorf("database directory error: %w", err)
	}

	logging.Debug("  Testing database directory write access...")
	if err := testWriteAccess(config.DatabaseDir); err != nil {
		return nil, fmt.Errorf("database directory is not writable (required for database): %w", err)
	}
	logging.Info("  [OK] Database directory is writable")

	return config, nil
}

// LogDatabaseInit logs database initialization
func LogDatabaseInit(duration time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DATABASE INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  [OK] Database initialized in %v", duration)
}

// LogPlaylistsLoaded logs the playlist collection state after bootstrap.
func LogPlaylistsLoaded(count int, selected string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("PLAYLISTS")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Loaded:   %d playlist(s)", count)
	logging.Info("  Selected: %s", valueOrDash(selected))
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes at debug level
func LogHTTPRoutes(router *mux.Router, logStaticFiles, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))

		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			group := routeGroup(route.Path)
			groups[group] = append(groups[group], route)
		}

		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			logging.Debug("  [%s]", name)
			for _, route := range groups[name] {
				logging.Debug("    %-6s %s", route.Method, route.Path)
			}
		}
	}

	logging.Info("  HTTP logging enabled")
	if logStaticFiles {
		logging.Info("    Static file logging: ON")
	} else {
		logging.Info("    Static file logging: OFF (set LOG_STATIC_FILES=true to enable)")
	}
	if logHealthChecks {
		logging.Info("    Health check logging: ON")
	} else {
		logging.Info("    Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

var probePaths = map[string]bool{
	"/health":  true,
	"/healthz": true,
	"/livez":   true,
	"/readyz":  true,
	"/version": true,
}

// routeGroup files a route under the surface it serves.
func routeGroup(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/"):
		return "api"
	case strings.HasPrefix(path, "/static/"):
		return "assets"
	case path == "/ws":
		return "live"
	case probePaths[path]:
		return "probes"
	default:
		return "pages"
	}
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Application:   http://localhost:%s", config.Port)
	logging.Info("    Bookmarklet:   http://localhost:%s/bookmarklet.html", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://localhost:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func printBanner() {
	banner := `
------------------------------------------------------------
    ____  __            ___      __
   / __ \/ /___ ___  __/ (_)____/ /_
  / /_/ / / __ '/ / / / / / ___/ __/
 / ____/ / /_/ / /_/ / / (__  ) /_
/_/   /_/\__,_/\__, /_/_/____/\__/
              /____/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
	}
	return nil
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
