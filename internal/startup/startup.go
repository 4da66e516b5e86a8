// Package startup loads application configuration from the environment
// and logs the boot sequence.
package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"music-vault/internal/logging"
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

// Config holds all application configuration
type Config struct {
	DataDir         string
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	LogHealthChecks bool

	// Derived document store paths
	SettingsStorePath string
	LibraryStorePath  string
	PlaylistStorePath string
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	dataDir := getEnv("DATA_DIR", "./data")
	port := getEnv("PORT", "8080")
	metricsPort := getEnv("METRICS_PORT", "9090")
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)
	logHealthChecks := getEnvBool("LOG_HEALTH_CHECKS", false)

	logging.Info("  DATA_DIR:          %s", dataDir)
	logging.Info("  PORT:              %s", port)
	logging.Info("  METRICS_PORT:      %s", metricsPort)
	logging.Info("  METRICS_ENABLED:   %v", metricsEnabled)
	logging.Info("  LOG_HEALTH_CHECKS: %v", logHealthChecks)
	logging.Info("  LOG_LEVEL:         %s", logging.GetLevel())

	dataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	logging.Info("  Data directory (absolute): %s", dataDir)

	return &Config{
		DataDir:           dataDir,
		Port:              port,
		MetricsPort:       metricsPort,
		MetricsEnabled:    metricsEnabled,
		LogHealthChecks:   logHealthChecks,
		SettingsStorePath: filepath.Join(dataDir, "settings.json"),
		LibraryStorePath:  filepath.Join(dataDir, "library.json"),
		PlaylistStorePath: filepath.Join(dataDir, "playlists.json"),
	}, nil
}

func printBanner() {
	logging.Info("============================================================")
	logging.Info("Music Vault %s (commit %s, built %s)", Version, Commit, BuildTime)
	logging.Info("%s %s/%s", GoVersion, runtime.GOOS, runtime.GOARCH)
	logging.Info("============================================================")
}

// LogServerStarted logs the listening endpoints once boot completes.
func LogServerStarted(config *Config, elapsed time.Duration) {
	logging.Info("------------------------------------------------------------")
	logging.Info("Server ready in %s", elapsed.Round(time.Millisecond))
	logging.Info("    API:     http://localhost:%s/api", config.Port)
	logging.Info("    Health:  http://localhost:%s/health", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics: http://localhost:%s/metrics", config.MetricsPort)
	}
	logging.Info("------------------------------------------------------------")
}

// LogFatal logs a fatal startup error and exits.
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logging.Warn("  Invalid %s=%q, using default %v", key, v, fallback)
		return fallback
	}
	return b
}
