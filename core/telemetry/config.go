package telemetry

// Config holds configuration for metrics.
type Config struct {
	// Enabled turns metric collection on.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Provider selects the backend. Only "prometheus" is supported.
	Provider string `mapstructure:"provider" default:"prometheus"`
	// Path is the HTTP path metrics are served on.
	Path string `mapstructure:"path" default:"/metrics"`
}
