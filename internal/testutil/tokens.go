package testutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
)

// TestSigningKey signs tokens minted by MintToken. Nothing in the app verifies it.
var TestSigningKey = []byte("erp-ui-test-signing-key") //nolint:gochecknoglobals // test fixture

// ClaimsBuilder provides a fluent interface for building bearer token claims in tests.
type ClaimsBuilder struct {
	claims domainauth.Claims
}

// NewClaims creates a ClaimsBuilder for a user account issued now with the standard 12h lifetime.
func NewClaims() *ClaimsBuilder {
	now := time.Now()
	return &ClaimsBuilder{
		claims: domainauth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "64f0c1a2b3",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(12 * time.Hour)),
			},
			Email: "a@b.com",
			Type:  domainauth.AccountUser,
		},
	}
}

// WithSubject sets the sub claim.
func (b *ClaimsBuilder) WithSubject(sub string) *ClaimsBuilder {
	b.claims.Subject = sub
	return b
}

// WithEmail sets the email claim.
func (b *ClaimsBuilder) WithEmail(email string) *ClaimsBuilder {
	b.claims.Email = email
	return b
}

// WithRoles sets the roles claim.
func (b *ClaimsBuilder) WithRoles(roles ...string) *ClaimsBuilder {
	b.claims.Roles = jwt.ClaimStrings(roles)
	return b
}

// WithPermissions sets the permissions claim.
func (b *ClaimsBuilder) WithPermissions(p domainauth.PermissionMap) *ClaimsBuilder {
	b.claims.Permissions = p
	return b
}

// WithName sets the first and last name claims.
func (b *ClaimsBuilder) WithName(first, last string) *ClaimsBuilder {
	b.claims.FirstName = first
	b.claims.LastName = last
	return b
}

// ExpiresAt overrides the exp claim.
func (b *ClaimsBuilder) ExpiresAt(t time.Time) *ClaimsBuilder {
	b.claims.ExpiresAt = jwt.NewNumericDate(t)
	return b
}

// Build returns the configured claims.
func (b *ClaimsBuilder) Build() domainauth.Claims {
	return b.claims
}

// Mint signs the configured claims.
func (b *ClaimsBuilder) Mint(t TestingTB) string {
	t.Helper()
	return MintToken(t, b.claims)
}

// MintToken signs claims with HS256 using TestSigningKey.
func MintToken(t TestingTB, claims jwt.Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(TestSigningKey)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return raw
}
