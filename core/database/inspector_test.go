package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	// Setup In-Memory DB
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	// SQLite specific types: INTEGER, TEXT.
	err = db.Exec("CREATE TABLE test_revisions (id INTEGER PRIMARY KEY, name TEXT NOT NULL, checksum TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_revisions")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "integer", colMap["id"].Type)
	assert.Equal(t, "PRI", colMap["id"].Key)
	assert.Equal(t, "text", colMap["name"].Type)
	assert.Equal(t, "NO", colMap["name"].Null)
	assert.Equal(t, "YES", colMap["checksum"].Null)

	// PRAGMA table_info returns an empty result for a non-existent table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE t (id INTEGER, path TEXT)").Error)

	missing, err := MissingColumns(db, "t", []string{"id", "Path", "checksum"})
	require.NoError(t, err)
	assert.Equal(t, []string{"checksum"}, missing)
}
