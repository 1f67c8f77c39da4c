package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/identity-core/internal/domain"
	"github.com/sandeepkv93/identity-core/internal/observability"

	"gorm.io/gorm"
)

type SeedReport struct {
	CreatedRoles int  `json:"created_roles"`
	Noop         bool `json:"noop"`
}

func Seed(db *gorm.DB) error {
	_, err := SeedSync(db)
	return err
}

// SeedSync inserts the fixed role enumeration, leaving existing rows untouched.
func SeedSync(db *gorm.DB) (*SeedReport, error) {
	ctx := context.Background()
	start := time.Now()
	defer func() {
		observability.RecordDatabaseStartupDuration(ctx, "seed", time.Since(start))
	}()

	report := &SeedReport{}
	for _, role := range domain.DefaultRoles() {
		r := role
		res := db.Where("id = ?", r.ID).FirstOrCreate(&r)
		if res.Error != nil {
			observability.RecordDatabaseStartupEvent(ctx, "seed", "error")
			return nil, fmt.Errorf("seed role %s: %w", role.Name, res.Error)
		}
		if res.RowsAffected > 0 {
			report.CreatedRoles++
		}
	}
	report.Noop = report.CreatedRoles == 0
	observability.RecordDatabaseStartupEvent(ctx, "seed", "success")
	return report, nil
}

// VerifyUserEmail is the operator path for the verification transition.
func VerifyUserEmail(db *gorm.DB, email string) error {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return fmt.Errorf("email is required")
	}
	var u domain.User
	if err := db.Where("email = ?", normalized).First(&u).Error; err != nil {
		return err
	}
	if u.EmailVerified {
		return nil
	}
	now := time.Now().UTC()
	return db.Model(&domain.User{}).Where("id = ?", u.ID).
		Updates(map[string]any{"email_verified": true, "email_verified_at": &now}).Error
}
