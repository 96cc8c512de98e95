package backup

// Config holds configuration for backups and retention.
type Config struct {
	// Dir is the directory backups are written to.
	Dir string `mapstructure:"dir" default:"backups"`
	// MaxPerGroup is the number of backups kept per preset by prune.
	MaxPerGroup int `mapstructure:"max_per_group" default:"10"`
	// Mirror uploads every backup to object storage when enabled.
	Mirror bool `mapstructure:"mirror" default:"false"`
	// Prefix is the object key prefix for mirrored backups.
	Prefix string `mapstructure:"prefix" default:"backups/"`
}
