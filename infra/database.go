package infra

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/invest/infra/migrations"
	"github.com/amirasaad/invest/infra/repository"
	"github.com/amirasaad/invest/pkg/config"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqliteScheme = "sqlite://"

// NewDBConnection opens postgres for postgres:// URLs and an embedded sqlite
// database for sqlite:// URLs.
func NewDBConnection(cnf *config.DB, appEnv string) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Warn
	} else {
		logMode = logger.Silent
	}
	gormCfg := &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	}

	var (
		dialector gorm.Dialector
		isSQLite  bool
	)
	switch {
	case strings.HasPrefix(cnf.Url, sqliteScheme):
		dialector = sqlite.Open(sqliteDSN(strings.TrimPrefix(cnf.Url, sqliteScheme)))
		isSQLite = true
	case strings.HasPrefix(cnf.Url, "postgres://"), strings.HasPrefix(cnf.Url, "postgresql://"):
		dialector = postgres.Open(cnf.Url)
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme: %q", cnf.Url)
	}

	connection, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if isSQLite {
		// sqlite allows one writer; a single connection serialises transactions.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(1 * time.Hour)
	}
	return connection, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Migrate brings the schema up to date: versioned SQL migrations on
// postgres, AutoMigrate elsewhere.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return migrations.Up(sqlDB)
	}
	return db.AutoMigrate(repository.Models()...)
}
