// Package config loads formatter tool configuration from TOML files
// and OMEFORMAT_ environment variables.
package config

import "time"

// Config represents the formatter tool configuration
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Profile ProfileConfig `mapstructure:"profile"`
	Logging LoggingConfig `mapstructure:"logging"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// OutputConfig holds defaults for generated schema artifacts
type OutputConfig struct {
	Dir     string `mapstructure:"dir"`     // Directory generated files land in (default: ".")
	License string `mapstructure:"license"` // License URI stamped into schema headers
	Version string `mapstructure:"version"` // Schema version stamped into schema headers
}

// ProfileConfig points at the conversion profile applied when no
// --profile flag is given
type ProfileConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig configures the zap-backed logger
type LoggingConfig struct {
	JSON      bool `mapstructure:"json"`      // Structured JSON output instead of console
	Verbosity int  `mapstructure:"verbosity"` // 0 = info, 1 = debug, 2+ = trace detail
}

// WatchConfig configures watch mode regeneration
type WatchConfig struct {
	DebounceMs int `mapstructure:"debounce_ms"` // Quiet period before regenerating (default: 500)
}

// File permission constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// GetOutputDir returns the configured output directory
func (c *Config) GetOutputDir() string {
	if c.Output.Dir == "" {
		return "." // Fallback default
	}
	return c.Output.Dir
}

// GetOutputLicense returns the license URI for generated schemas
func (c *Config) GetOutputLicense() string {
	if c.Output.License == "" {
		return "https://creativecommons.org/publicdomain/zero/1.0/"
	}
	return c.Output.License
}

// GetOutputVersion returns the version string for generated schemas
func (c *Config) GetOutputVersion() string {
	if c.Output.Version == "" {
		return "0.0.1"
	}
	return c.Output.Version
}

// GetWatchDebounce returns the watch-mode debounce period with the
// default applied for zero or negative values
func (c *Config) GetWatchDebounce() time.Duration {
	if c.Watch.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}
