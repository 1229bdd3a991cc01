package tests

import (
	"os"
	"strings"

	"gorm.io/gorm"
)

// RunSQLFile applies a migration file statement by statement; the schema
// file holds plain DDL with no embedded semicolons.
func RunSQLFile(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	for _, stmt := range strings.Split(string(raw), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
