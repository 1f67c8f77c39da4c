package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/identity-core/internal/domain"
)

func TestAccountRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newRepositoryDBForTest(t)
	users := NewUserRepository(db)
	repo := NewAccountRepository(db)

	u := &domain.User{Email: "a@x.com", PasswordHash: "h"}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	created := make([]*domain.Account, 0, 3)
	for _, key := range []string{"k1", "k2", "k3"} {
		a := &domain.Account{UserID: u.ID, Provider: "GOOGLE", ExternalKey: key}
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("create account %s: %v", key, err)
		}
		created = append(created, a)
		time.Sleep(time.Millisecond)
	}

	list, err := repo.ListByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(list))
	}
	for i := range list {
		if list[i].ID != created[i].ID {
			t.Fatalf("expected insertion order at %d: got %s want %s", i, list[i].ID, created[i].ID)
		}
	}

	found, err := repo.FindByProviderAndKey(ctx, "GOOGLE", "k2")
	if err != nil || found.ID != created[1].ID {
		t.Fatalf("find by provider: %+v err=%v", found, err)
	}
	if _, err := repo.FindByID(ctx, created[0].ID); err != nil {
		t.Fatalf("find by id: %v", err)
	}

	if err := repo.DeleteByID(ctx, created[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteByID(ctx, created[1].ID); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound on second delete, got %v", err)
	}
	if _, err := repo.FindByProviderAndKey(ctx, "GOOGLE", "k2"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound after delete, got %v", err)
	}
}

func TestAccountRepositoryProviderKeyIsUnique(t *testing.T) {
	ctx := context.Background()
	db := newRepositoryDBForTest(t)
	users := NewUserRepository(db)
	repo := NewAccountRepository(db)

	a := &domain.User{Email: "a@x.com", PasswordHash: "h"}
	b := &domain.User{Email: "b@x.com", PasswordHash: "h"}
	for _, u := range []*domain.User{a, b} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	if err := repo.Create(ctx, &domain.Account{UserID: a.ID, Provider: "GOOGLE", ExternalKey: "same"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, &domain.Account{UserID: b.ID, Provider: "GOOGLE", ExternalKey: "same"})
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
	if err := repo.Create(ctx, &domain.Account{UserID: b.ID, Provider: "GITHUB", ExternalKey: "same"}); err != nil {
		t.Fatalf("same key under another provider should succeed, got %v", err)
	}
}

func TestAccountRepositoryListByUserEmpty(t *testing.T) {
	repo := NewAccountRepository(newRepositoryDBForTest(t))
	list, err := repo.ListByUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}
}
