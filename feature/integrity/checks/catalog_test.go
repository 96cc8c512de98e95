package checks

import (
	"testing"

	"preset-manager/core/database"
	"preset-manager/feature/presets/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestModelColumns(t *testing.T) {
	columns := ModelColumns(models.Revision{})
	assert.Contains(t, columns, "id")
	assert.Contains(t, columns, "checksum")
	assert.Contains(t, columns, "created_at")
	assert.Len(t, columns, 13)
	assert.Equal(t, columns, ModelColumns(&models.Revision{}))
}

func TestCheckCatalog_NilDB(t *testing.T) {
	report, err := CheckCatalog(nil, models.Revision{})
	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Error(t, FixCatalog(nil, &models.Revision{}))
}

func TestCheckCatalog_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	report, err := CheckCatalog(db, models.Revision{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.MissingColumns, 13)

	require.NoError(t, FixCatalog(db, &models.Revision{}))

	report, err = CheckCatalog(db, models.Revision{})
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Empty(t, report.MissingColumns)
	assert.Equal(t, "preset_revisions", report.Table)
}

func TestCheckCatalog_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	for _, col := range ModelColumns(models.Revision{}) {
		if col == "variant" {
			continue
		}
		rows.AddRow(col, "varchar(255)", "YES", "", nil, "")
	}
	mock.ExpectQuery("SHOW COLUMNS FROM `preset_revisions`").WillReturnRows(rows)

	report, err := CheckCatalog(db, models.Revision{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"variant"}, report.MissingColumns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckCatalog_NotATable(t *testing.T) {
	db, _ := setupMockDB(t)
	_, err := CheckCatalog(db, struct{ ID int }{})
	assert.ErrorContains(t, err, "does not implement TableName")
}
