package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

type DB struct {
	*gorm.DB
}

// NewConnection opens the analysis database. A sqlite:// URL selects a local
// sqlite file (sqlite://:memory: for an in-process database); anything else
// is handed to the postgres driver.
func NewConnection(databaseURL string, isDevelopment bool) (*DB, error) {
	logLevel := logger.Error
	if isDevelopment {
		logLevel = logger.Warn
	}

	dialector, driver := dialectorFor(databaseURL)
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt: driver == "postgres",
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting %s connection pool: %w", driver, err)
	}

	if driver == "sqlite" {
		// every pooled connection to :memory: would see its own empty database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging %s database: %w", driver, err)
	}

	logrus.WithField("driver", driver).Info("Database connection established")

	return &DB{db}, nil
}

func dialectorFor(databaseURL string) (gorm.Dialector, string) {
	if path, ok := strings.CutPrefix(databaseURL, sqlitePrefix); ok {
		return sqlite.Open(path), "sqlite"
	}
	return postgres.Open(databaseURL), "postgres"
}

func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
