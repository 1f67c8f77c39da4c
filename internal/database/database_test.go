package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/identity-core/internal/domain"

	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenDSN("sqlite::memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	report, err := SeedSync(db)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if report.CreatedRoles != 2 || report.Noop {
		t.Fatalf("expected two created roles, got %+v", report)
	}
	report, err = SeedSync(db)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if !report.Noop {
		t.Fatalf("expected noop reseed, got %+v", report)
	}

	var roles []domain.Role
	if err := db.Order("id asc").Find(&roles).Error; err != nil {
		t.Fatalf("list roles: %v", err)
	}
	if len(roles) != 2 || roles[0].Name != domain.RoleUser || roles[1].Name != domain.RoleAdmin {
		t.Fatalf("unexpected roles %+v", roles)
	}
}

func TestStatusReportsTables(t *testing.T) {
	db := openTestDB(t)
	for _, st := range Status(db) {
		if !st.Present || st.Table == "" {
			t.Fatalf("expected present table, got %+v", st)
		}
	}
}

func TestVerifyUserEmail(t *testing.T) {
	db := openTestDB(t)
	if err := Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	u := domain.User{Email: "a@x.com", PasswordHash: "h", IsInputPassword: true}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := VerifyUserEmail(db, " A@X.com "); err != nil {
		t.Fatalf("verify: %v", err)
	}
	var got domain.User
	if err := db.First(&got, "id = ?", u.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.EmailVerified || got.EmailVerifiedAt == nil {
		t.Fatalf("expected verified user, got %+v", got)
	}
	if err := VerifyUserEmail(db, "a@x.com"); err != nil {
		t.Fatalf("expected second verify to be a no-op, got %v", err)
	}
	if err := VerifyUserEmail(db, "missing@x.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := VerifyUserEmail(db, ""); err == nil {
		t.Fatal("expected error for empty email")
	}
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	lg := newGormLogger(&buf)
	query := func() (string, int64) { return "SELECT * FROM users WHERE email = 'a@x.com'", 0 }

	lg.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	if buf.Len() != 0 {
		t.Fatalf("expected no output for a missed lookup, got %q", buf.String())
	}

	lg.Trace(context.Background(), time.Now(), query, errors.New("no such table: users"))
	if !bytes.Contains(buf.Bytes(), []byte("no such table")) {
		t.Fatalf("expected failed query to be logged, got %q", buf.String())
	}
}
