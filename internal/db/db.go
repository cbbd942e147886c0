package db

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"codemingle/internal/logger"
)

// Open returns a connected GORM DB for the given driver (mysql, postgres or sqlite).
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of the driver.
func Open(driver, dsn string, logg *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	cfg := &gorm.Config{TranslateError: true}
	if logg != nil {
		cfg.Logger = gormLogger.New(
			logg.With("component", "gorm"),
			gormLogger.Config{
				SlowThreshold:             500 * time.Millisecond,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		)
	} else {
		cfg.Logger = gormLogger.Default.LogMode(gormLogger.Silent)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return db, nil
}
