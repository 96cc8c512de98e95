package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// Format is the file format used when the API writes a preset without
	// an explicit extension (xml, json, yaml).
	Format string `mapstructure:"format" default:"xml"`
	// BodyLimit is the maximum request body size in bytes.
	BodyLimit int `mapstructure:"body_limit" default:"10485760"`
}

const (
	FormatXML  = "xml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// IsValidFormat checks if the configured output format is supported.
func (c Config) IsValidFormat() bool {
	switch c.Format {
	case FormatXML, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// Extension returns the file extension of the configured format.
func (c Config) Extension() string {
	if !c.IsValidFormat() {
		return "." + FormatXML
	}
	return "." + c.Format
}
