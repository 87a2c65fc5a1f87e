package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Output defaults
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.license", "https://creativecommons.org/publicdomain/zero/1.0/")
	v.SetDefault("output.version", "0.0.1")

	// Profile defaults
	v.SetDefault("profile.path", "")

	// Logging defaults
	v.SetDefault("logging.json", false)
	v.SetDefault("logging.verbosity", 0)

	// Watch mode defaults
	v.SetDefault("watch.debounce_ms", 500)
}

// BindEnvOverrides explicitly binds configuration keys to environment
// variables. Unmarshal only sees env values for keys bound here.
func BindEnvOverrides(v *viper.Viper) {
	v.BindEnv("output.dir", "OMEFORMAT_OUTPUT_DIR")
	v.BindEnv("output.license", "OMEFORMAT_OUTPUT_LICENSE")
	v.BindEnv("output.version", "OMEFORMAT_OUTPUT_VERSION")
	v.BindEnv("profile.path", "OMEFORMAT_PROFILE_PATH")
	v.BindEnv("logging.json", "OMEFORMAT_LOGGING_JSON")
	v.BindEnv("logging.verbosity", "OMEFORMAT_LOGGING_VERBOSITY")
}
