package repository

import (
	"context"
	"time"

	"github.com/sandeepkv93/identity-core/internal/domain"

	"gorm.io/gorm"
)

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	PasswordHash    *string
	IsInputPassword *bool
	RoleID          *uint
}

func (u UserUpdate) columns() map[string]any {
	cols := map[string]any{}
	if u.PasswordHash != nil {
		cols["password_hash"] = *u.PasswordHash
	}
	if u.IsInputPassword != nil {
		cols["is_input_password"] = *u.IsInputPassword
	}
	if u.RoleID != nil {
		cols["role_id"] = *u.RoleID
	}
	return cols
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindVerifiedByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateByEmail(ctx context.Context, email string, update UserUpdate) error
	MarkEmailVerified(ctx context.Context, id string) error
}

type GormUserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &GormUserRepository{db: db} }

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Preload("Role").Where("id = ?", id).First(&u).Error
	err = translate(err, ErrUserNotFound, nil)
	recordOperation(ctx, "user", "find_by_id", err)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&u).Error
	err = translate(err, ErrUserNotFound, nil)
	recordOperation(ctx, "user", "find_by_email", err)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) FindVerifiedByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Preload("Role").
		Where("email = ? AND email_verified = ?", email, true).First(&u).Error
	err = translate(err, ErrUserNotFound, nil)
	recordOperation(ctx, "user", "find_verified_by_email", err)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Omit("Role").Create(user).Error
	err = translate(err, nil, ErrDuplicateEmail)
	recordOperation(ctx, "user", "create", err)
	return err
}

func (r *GormUserRepository) UpdateByEmail(ctx context.Context, email string, update UserUpdate) error {
	cols := update.columns()
	if len(cols) == 0 {
		_, err := r.FindByEmail(ctx, email)
		return err
	}
	tx := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Updates(cols)
	err := tx.Error
	if err == nil && tx.RowsAffected == 0 {
		err = ErrUserNotFound
	}
	recordOperation(ctx, "user", "update_by_email", err)
	return err
}

// MarkEmailVerified flips email_verified once. Re-verifying is a no-op.
func (r *GormUserRepository) MarkEmailVerified(ctx context.Context, id string) error {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND email_verified = ?", id, false).
		Updates(map[string]any{"email_verified": true, "email_verified_at": &now})
	err := tx.Error
	if err == nil && tx.RowsAffected == 0 {
		var count int64
		if err = r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count).Error; err == nil && count == 0 {
			err = ErrUserNotFound
		}
	}
	recordOperation(ctx, "user", "mark_email_verified", err)
	return err
}
