// Package database handles catalog database connections and schema
// inspection.
//
// It provides a wrapper around GORM to configure either a MySQL server or a
// local SQLite file based on the application's configuration.
//
// # Connect
//
// Connect selects the dialector from Config.Driver, applies the connection
// timeout to the DSN (MySQL) and pings the database before returning. The
// catalog is optional: callers log a warning and continue without it when
// the connection fails.
//
// # Schema Inspection
//
// GetTableColumns reads column definitions (SHOW COLUMNS on MySQL, PRAGMA
// table_info on SQLite) so the integrity feature can verify that the
// revision table matches the model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Catalog unavailable", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "preset_revisions", []string{"checksum"})
package database
