package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DashboardConfig represents the startup configuration for the dashboard
// process. Fields are pointers so a partial JSON file only overrides what it
// names; the Get* methods supply defaults for everything else.
type DashboardConfig struct {
	// HTTP
	Listen          *string `json:"listen,omitempty"`
	ShutdownTimeout *string `json:"shutdown_timeout,omitempty"` // duration string like "5s"
	DebugRoutes     *bool   `json:"debug_routes,omitempty"`

	// File picker
	DataDir   *string `json:"data_dir,omitempty"`
	OutputDir *string `json:"output_dir,omitempty"`

	// Session store
	ActivityLimit *int `json:"activity_limit,omitempty"`

	// Server-sent events
	EventKeepalive *string `json:"event_keepalive,omitempty"` // duration string like "15s"
}

// EmptyDashboardConfig returns a DashboardConfig with all fields set to nil.
func EmptyDashboardConfig() *DashboardConfig {
	return &DashboardConfig{}
}

// LoadDashboardConfig loads a DashboardConfig from a JSON file.
// The file must have a .json extension and be under the max file size.
func LoadDashboardConfig(path string) (*DashboardConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyDashboardConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *DashboardConfig) Validate() error {
	if c.Listen != nil && *c.Listen == "" {
		return fmt.Errorf("listen must not be empty")
	}

	if c.ActivityLimit != nil && *c.ActivityLimit < 1 {
		return fmt.Errorf("activity_limit must be positive, got %d", *c.ActivityLimit)
	}

	for name, v := range map[string]*string{
		"shutdown_timeout": c.ShutdownTimeout,
		"event_keepalive":  c.EventKeepalive,
	} {
		if v == nil || *v == "" {
			continue
		}
		d, err := time.ParseDuration(*v)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", name, *v, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, *v)
		}
	}

	return nil
}

// GetListen returns the listen address or the default.
func (c *DashboardConfig) GetListen() string {
	if c.Listen == nil {
		return ":8080"
	}
	return *c.Listen
}

// GetShutdownTimeout parses and returns the ShutdownTimeout as a time.Duration.
func (c *DashboardConfig) GetShutdownTimeout() time.Duration {
	return parseDurationOr(c.ShutdownTimeout, 5*time.Second)
}

// GetDebugRoutes returns whether /debug/ routes are mounted.
func (c *DashboardConfig) GetDebugRoutes() bool {
	if c.DebugRoutes == nil {
		return false
	}
	return *c.DebugRoutes
}

// GetDataDir returns the directory the file picker browses.
func (c *DashboardConfig) GetDataDir() string {
	if c.DataDir == nil || *c.DataDir == "" {
		return "."
	}
	return *c.DataDir
}

// GetOutputDir returns the decoder output root; empty means "next to the input".
func (c *DashboardConfig) GetOutputDir() string {
	if c.OutputDir == nil {
		return ""
	}
	return *c.OutputDir
}

// GetActivityLimit returns how many activity entries the store retains.
func (c *DashboardConfig) GetActivityLimit() int {
	if c.ActivityLimit == nil {
		return 200
	}
	return *c.ActivityLimit
}

// GetEventKeepalive returns the interval between SSE keepalive comments.
func (c *DashboardConfig) GetEventKeepalive() time.Duration {
	return parseDurationOr(c.EventKeepalive, 15*time.Second)
}

func parseDurationOr(v *string, def time.Duration) time.Duration {
	if v == nil || *v == "" {
		return def
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return def
	}
	return d
}
