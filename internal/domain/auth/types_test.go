package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestRoleSet_IsOnlyConsultant(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  bool
	}{
		{name: "consultant only", roles: []string{"consultant"}, want: true},
		{name: "consultant and admin", roles: []string{"consultant", "admin"}, want: false},
		{name: "duplicate consultant collapses", roles: []string{"consultant", "consultant"}, want: true},
		{name: "finance", roles: []string{"finance"}, want: false},
		{name: "no roles", roles: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewRoleSet(tt.roles).IsOnlyConsultant(); got != tt.want {
				t.Fatalf("IsOnlyConsultant(%v) = %v, want %v", tt.roles, got, tt.want)
			}
		})
	}
}

func TestState_OnlyActiveExposesSession(t *testing.T) {
	if _, ok := Unauthenticated().Session(); ok {
		t.Fatalf("unauthenticated state exposed a session")
	}
	errored := Errored(ReasonInvalidAccessToken)
	if _, ok := errored.Session(); ok {
		t.Fatalf("errored state exposed a session")
	}
	if errored.Reason() != ReasonInvalidAccessToken || errored.Kind() != StateErrored {
		t.Fatalf("unexpected errored state: %v %q", errored.Kind(), errored.Reason())
	}
	active := Active(Session{ID: "u1"})
	s, ok := active.Session()
	if !ok || s.ID != "u1" {
		t.Fatalf("active state did not expose its session")
	}
}

func TestNewSession_ClaimsWinOverProfile(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", ExpiresAt: jwt.NewNumericDate(exp)},
		Email:            "claims@example.com",
		Roles:            jwt.ClaimStrings{"finance"},
		FirstName:        "Ada",
	}
	profile := &Profile{
		ID:          "other",
		Email:       "profile@example.com",
		Roles:       []string{"consultant"},
		FirstName:   "Profile",
		LastName:    "Lovelace",
		Status:      "active",
		Permissions: PermissionMap{"/budget": {"read"}},
		Type:        AccountOrganization,
	}

	s := NewSession("tok", claims, profile)

	if s.ID != "u1" || s.Email != "claims@example.com" || s.FirstName != "Ada" {
		t.Fatalf("claims were overridden by profile: %+v", s)
	}
	if s.LastName != "Lovelace" || s.Status != "active" {
		t.Fatalf("profile did not fill missing attributes: %+v", s)
	}
	if !s.Roles.Has("finance") || s.Roles.Has(RoleConsultant) {
		t.Fatalf("roles = %v, want [finance]", s.Roles)
	}
	if !s.Permissions.Permits("/budget") {
		t.Fatalf("profile permissions not used when claim absent")
	}
	if s.Type != AccountOrganization || s.AccessToken != "tok" || !s.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestNewSession_PermissionClaimPresentSuppressesProfile(t *testing.T) {
	claims := Claims{Permissions: PermissionMap{}}
	s := NewSession("tok", claims, &Profile{Permissions: PermissionMap{"/budget": {"read"}}})
	if s.Permissions.Permits("/budget") {
		t.Fatalf("profile permissions leaked over an explicit permissions claim")
	}
	if s.Type != AccountUser {
		t.Fatalf("type = %q, want default user", s.Type)
	}
}

func TestSession_DisplayName(t *testing.T) {
	if got := (Session{FirstName: "Ada", LastName: "L"}).DisplayName(); got != "Ada L" {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := (Session{Email: "a@b.com"}).DisplayName(); got != "a@b.com" {
		t.Fatalf("DisplayName = %q", got)
	}
}
