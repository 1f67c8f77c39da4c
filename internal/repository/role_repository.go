package repository

import (
	"context"

	"github.com/sandeepkv93/identity-core/internal/domain"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
}

type GormRoleRepository struct{ db *gorm.DB }

func NewRoleRepository(db *gorm.DB) RoleRepository { return &GormRoleRepository{db: db} }

func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	err = translate(err, ErrRoleNotFound, nil)
	recordOperation(ctx, "role", "find_by_name", err)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *GormRoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).Order("id asc").Find(&roles).Error
	recordOperation(ctx, "role", "list", err)
	return roles, err
}
