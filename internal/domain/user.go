package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	Email           string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash    string     `gorm:"size:1024;not null" json:"-"`
	IsInputPassword bool       `gorm:"not null" json:"isInputPassword"`
	EmailVerified   bool       `gorm:"not null;index:idx_users_email_verified" json:"emailVerified"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt,omitempty"`
	RoleID          uint       `gorm:"not null" json:"roleId"`
	Role            Role       `gorm:"foreignKey:RoleID" json:"-"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.RoleID == 0 {
		u.RoleID = RoleUserID
	}
	return nil
}

// RoleName returns the display name of the user's role, falling back to the
// fixed enumeration when the association was not preloaded.
func (u *User) RoleName() string {
	if u.Role.Name != "" {
		return u.Role.Name
	}
	return RoleNameByID(u.RoleID)
}

// NormalizeEmail applies the store-wide email policy: trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
