package postgres

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Dialector builds the GORM dialector for a PostgreSQL DSN (URL or key=value form).
func Dialector(dsn string) (gorm.Dialector, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	return postgres.New(postgres.Config{DSN: dsn}), nil
}
