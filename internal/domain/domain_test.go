package domain

import "testing"

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  A@X.com "); got != "a@x.com" {
		t.Fatalf("expected a@x.com, got %q", got)
	}
}

func TestNormalizeProvider(t *testing.T) {
	cases := map[string]string{
		"":         DefaultProvider,
		" google ": "GOOGLE",
		"github":   "GITHUB",
	}
	for in, want := range cases {
		if got := NormalizeProvider(in); got != want {
			t.Fatalf("NormalizeProvider(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestRoleNameFallsBackToEnumeration(t *testing.T) {
	u := User{RoleID: RoleAdminID}
	if got := u.RoleName(); got != RoleAdmin {
		t.Fatalf("expected %s, got %s", RoleAdmin, got)
	}
	u.Role = Role{ID: RoleAdminID, Name: "Administrator"}
	if got := u.RoleName(); got != "Administrator" {
		t.Fatalf("expected preloaded name, got %s", got)
	}
	if RoleNameByID(99) != "" {
		t.Fatal("expected empty name for unknown role id")
	}
}

func TestBeforeCreateAssignsDefaults(t *testing.T) {
	u := User{Email: "a@x.com"}
	if err := u.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if u.ID == "" || u.RoleID != RoleUserID {
		t.Fatalf("expected id and default role, got %+v", u)
	}
	a := Account{}
	if err := a.BeforeCreate(nil); err != nil || a.ID == "" {
		t.Fatalf("expected account id, got %q err=%v", a.ID, err)
	}
}
