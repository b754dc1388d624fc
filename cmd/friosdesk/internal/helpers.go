package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/joho/godotenv"

	"github.com/3afrios/friosdesk/pkg/api"
	"github.com/3afrios/friosdesk/pkg/config"
	"github.com/3afrios/friosdesk/pkg/logger"
)

const Logo = "🧀"

var (
	version   = "dev"
	gitCommit string
	buildTime string
	goVersion string
)

func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".friosdesk", "config.json")
}

// LoadConfig reads .env (when present), the JSON config file and environment
// overrides, and initializes the global logger from the result.
func LoadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(GetConfigPath())
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

// NewAPIClient builds the backend client from the configuration.
func NewAPIClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
}

// FormatVersion returns the version string with optional git commit
func FormatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

// FormatBuildInfo returns build time and go version info
func FormatBuildInfo() (string, string) {
	build := buildTime
	goVer := goVersion
	if goVer == "" {
		goVer = runtime.Version()
	}
	return build, goVer
}

// GetVersion returns the version string
func GetVersion() string {
	return version
}
