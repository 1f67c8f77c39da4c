package database

import (
	"context"
	"time"

	"github.com/sandeepkv93/identity-core/internal/domain"
	"github.com/sandeepkv93/identity-core/internal/observability"

	"gorm.io/gorm"
)

func models() []any {
	return []any{
		&domain.Role{},
		&domain.User{},
		&domain.Account{},
	}
}

func Migrate(db *gorm.DB) error {
	ctx := context.Background()
	start := time.Now()
	defer func() {
		observability.RecordDatabaseStartupDuration(ctx, "migrate", time.Since(start))
	}()
	if err := db.AutoMigrate(models()...); err != nil {
		observability.RecordDatabaseStartupEvent(ctx, "migrate", "error")
		return err
	}
	observability.RecordDatabaseStartupEvent(ctx, "migrate", "success")
	return nil
}

type MigrationStatus struct {
	Table   string `json:"table"`
	Present bool   `json:"present"`
}

// Status reports which managed tables exist.
func Status(db *gorm.DB) []MigrationStatus {
	out := make([]MigrationStatus, 0, len(models()))
	for _, m := range models() {
		stmt := &gorm.Statement{DB: db}
		table := ""
		if err := stmt.Parse(m); err == nil {
			table = stmt.Schema.Table
		}
		out = append(out, MigrationStatus{Table: table, Present: db.Migrator().HasTable(m)})
	}
	return out
}
