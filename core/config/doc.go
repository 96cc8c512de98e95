// Package config provides configuration management for the Preset Manager.
//
// It uses Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each
// section and are registered recursively, so every key can be overridden
// through the environment (library.dir -> LIBRARY_DIR).
//
// # Configuration Structure
//
// The Config struct is divided into subsections owned by their packages:
//   - Server: HTTP port, API key, default output format, body limit
//   - Library: preset directory and maximum file size
//   - Backup: backup directory, retention count, mirror switch and prefix
//   - Storage: S3/MinIO credentials and bucket for the backup mirror
//   - Log: logging level and format
//   - Database: revision catalog connection (sqlite or mysql)
//   - Telemetry: Prometheus metrics
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Library.Dir)
package config
