package database

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sandeepkv93/identity-core/internal/config"
	"github.com/sandeepkv93/identity-core/internal/observability"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

func Open(cfg *config.Config) (*gorm.DB, error) {
	return OpenDSN(cfg.DatabaseURL)
}

// OpenDSN opens postgres for regular DSNs and sqlite for "sqlite:<path>".
// Unique violations are translated to gorm.ErrDuplicatedKey.
func OpenDSN(dsn string) (*gorm.DB, error) {
	start := time.Now()
	ctx := context.Background()
	defer func() {
		observability.RecordDatabaseStartupDuration(ctx, "connect", time.Since(start))
	}()

	gcfg := &gorm.Config{
		Logger:         newGormLogger(os.Stdout),
		TranslateError: true,
	}
	var (
		db  *gorm.DB
		err error
	)
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		db, err = gorm.Open(sqlite.Open(path), gcfg)
		if err == nil {
			err = limitSQLiteConns(db)
		}
	} else {
		db, err = gorm.Open(postgres.Open(dsn), gcfg)
	}
	if err != nil {
		observability.RecordDatabaseStartupEvent(ctx, "connect", "error")
		return nil, err
	}
	observability.RecordDatabaseStartupEvent(ctx, "connect", "success")
	return db, nil
}

// newGormLogger reports slow queries and failures but not ErrRecordNotFound.
func newGormLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// sqlite in-memory databases are per-connection.
func limitSQLiteConns(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	return nil
}
