package checks

import (
	"fmt"
	"reflect"
	"strings"

	"preset-manager/core/database"

	"gorm.io/gorm"
)

// CatalogReport is the result of a catalog schema check.
type CatalogReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
}

// CheckCatalog verifies that the table of model has every column declared
// in the model's gorm tags.
func CheckCatalog(db *gorm.DB, model any) (*CatalogReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	tabler, ok := model.(interface{ TableName() string })
	if !ok {
		return nil, fmt.Errorf("model %T does not implement TableName", model)
	}

	missing, err := database.MissingColumns(db, tabler.TableName(), ModelColumns(model))
	if err != nil {
		return nil, err
	}

	return &CatalogReport{
		Table:          tabler.TableName(),
		Matched:        len(missing) == 0,
		MissingColumns: nonNil(missing),
	}, nil
}

// FixCatalog creates or extends the table of model.
func FixCatalog(db *gorm.DB, model any) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.AutoMigrate(model)
}

// ModelColumns lists the column names declared in the gorm tags of model.
func ModelColumns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var columns []string
	for i := 0; i < t.NumField(); i++ {
		if col := parseGormColumn(t.Field(i).Tag.Get("gorm")); col != "" {
			columns = append(columns, col)
		}
	}
	return columns
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
