package mysql

import (
	"fmt"
	"strings"
	"time"

	drivermysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Dialector builds the GORM dialector for a MySQL DSN. parseTime is always enabled and times are
// read as UTC so order dates scan into time.Time regardless of what the DSN asked for.
func Dialector(dsn string) (gorm.Dialector, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("mysql DSN is empty")
	}
	cfg, err := drivermysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql DSN: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return mysql.New(mysql.Config{DSN: cfg.FormatDSN(), DSNConfig: cfg}), nil
}
