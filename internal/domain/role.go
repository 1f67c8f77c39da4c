package domain

import "strings"

const (
	RoleUserID  uint = 1
	RoleAdminID uint = 2

	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:64;not null" json:"name"`
}

// DefaultRoles is the fixed role enumeration seeded into the roles table.
func DefaultRoles() []Role {
	return []Role{
		{ID: RoleUserID, Name: RoleUser},
		{ID: RoleAdminID, Name: RoleAdmin},
	}
}

func RoleNameByID(id uint) string {
	for _, r := range DefaultRoles() {
		if r.ID == id {
			return r.Name
		}
	}
	return ""
}

func NormalizeRoleName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
