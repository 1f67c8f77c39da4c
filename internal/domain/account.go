package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultProvider = "GOOGLE"

type Account struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;not null;index:idx_accounts_user_id" json:"userId"`
	Provider    string    `gorm:"size:32;not null;uniqueIndex:idx_accounts_provider_key,priority:1" json:"provider"`
	ExternalKey string    `gorm:"size:255;not null;uniqueIndex:idx_accounts_provider_key,priority:2" json:"key"`
	Avatar      string    `gorm:"size:1024" json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (a *Account) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// NormalizeProvider upper-cases the provider and defaults it to GOOGLE.
func NormalizeProvider(provider string) string {
	p := strings.ToUpper(strings.TrimSpace(provider))
	if p == "" {
		return DefaultProvider
	}
	return p
}
