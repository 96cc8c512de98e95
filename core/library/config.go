package library

// Config holds configuration for the preset library.
type Config struct {
	// Dir is the directory holding preset files.
	Dir string `mapstructure:"dir" default:"presets"`
	// MaxBytes rejects preset files above this size.
	MaxBytes int64 `mapstructure:"max_bytes" default:"10485760"`
}
