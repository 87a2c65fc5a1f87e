package config

import (
	"github.com/Masterminds/semver/v3"

	"github.com/ome-nbo-tools/ome-nbo-formatter/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Verbosity: 0 = info level, higher widens output, negative is invalid
	if c.Logging.Verbosity < 0 {
		return errors.Newf("logging.verbosity must be >= 0, got %d", c.Logging.Verbosity)
	}

	// Debounce: 0 = default period per config.go, negative is invalid
	if c.Watch.DebounceMs < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMs)
	}

	// Output version is stamped into schema headers and must be a
	// valid semantic version when set
	if c.Output.Version != "" {
		if _, err := semver.NewVersion(c.Output.Version); err != nil {
			return errors.Newf("output.version %q is not a valid semantic version: %v", c.Output.Version, err)
		}
	}

	return nil
}
