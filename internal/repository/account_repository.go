package repository

import (
	"context"

	"github.com/sandeepkv93/identity-core/internal/domain"

	"gorm.io/gorm"
)

type AccountRepository interface {
	FindByProviderAndKey(ctx context.Context, provider, key string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
	ListByUser(ctx context.Context, userID string) ([]domain.Account, error)
	DeleteByID(ctx context.Context, id string) error
}

type GormAccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) AccountRepository { return &GormAccountRepository{db: db} }

func (r *GormAccountRepository) FindByProviderAndKey(ctx context.Context, provider, key string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.WithContext(ctx).Where("provider = ? AND external_key = ?", provider, key).First(&a).Error
	err = translate(err, ErrAccountNotFound, nil)
	recordOperation(ctx, "account", "find_by_provider", err)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	err = translate(err, ErrAccountNotFound, nil)
	recordOperation(ctx, "account", "find_by_id", err)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	err := r.db.WithContext(ctx).Create(account).Error
	err = translate(err, nil, ErrDuplicateAccount)
	recordOperation(ctx, "account", "create", err)
	return err
}

func (r *GormAccountRepository) ListByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts := []domain.Account{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at asc, id asc").Find(&accounts).Error
	recordOperation(ctx, "account", "list_by_user", err)
	return accounts, err
}

func (r *GormAccountRepository) DeleteByID(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Account{})
	err := tx.Error
	if err == nil && tx.RowsAffected == 0 {
		err = ErrAccountNotFound
	}
	recordOperation(ctx, "account", "delete", err)
	return err
}
