package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is a backend-issued role name. Keep string form for easy comparison with claims.
type Role string

// RoleConsultant is the external consultant role, kept out of admin modules.
const RoleConsultant Role = "consultant"

// AccountType distinguishes individual users from organization accounts.
type AccountType string

const (
	AccountUser         AccountType = "user"
	AccountOrganization AccountType = "organization"
)

// Claims is the canonical claim set carried by backend-issued bearer tokens.
// Every field is optional; the backend decides which ones to emit per account.
type Claims struct {
	jwt.RegisteredClaims

	Email              string           `json:"email,omitempty"`
	Roles              jwt.ClaimStrings `json:"roles,omitempty"`
	FirstName          string           `json:"firstName,omitempty"`
	LastName           string           `json:"lastName,omitempty"`
	EmployeeID         string           `json:"employeeId,omitempty"`
	Department         string           `json:"department,omitempty"`
	Position           string           `json:"position,omitempty"`
	RegistrationStatus string           `json:"registrationStatus,omitempty"`
	PhoneNumber        string           `json:"phoneNumber,omitempty"`
	NationalID         string           `json:"nationalId,omitempty"`
	Status             string           `json:"status,omitempty"`
	Type               AccountType      `json:"type,omitempty"`
	Permissions        PermissionMap    `json:"permissions,omitempty"`
}

// Profile is the user/organization record returned alongside the token at login.
// It is kept server-side for the token's lifetime so sessions can show attributes
// the token itself does not carry.
type Profile struct {
	ID                 string        `json:"_id"`
	Email              string        `json:"email"`
	Roles              []string      `json:"roles"`
	FirstName          string        `json:"firstName,omitempty"`
	LastName           string        `json:"lastName,omitempty"`
	EmployeeID         string        `json:"employeeId,omitempty"`
	Department         string        `json:"department,omitempty"`
	Position           string        `json:"position,omitempty"`
	RegistrationStatus string        `json:"registrationStatus,omitempty"`
	PhoneNumber        string        `json:"phoneNumber,omitempty"`
	Status             string        `json:"status,omitempty"`
	NationalID         string        `json:"nationalId,omitempty"`
	Permissions        PermissionMap `json:"permissions,omitempty"`
	Type               AccountType   `json:"type,omitempty"`
}

// Session is the request-scoped view of the authenticated principal.
type Session struct {
	ID                 string
	Email              string
	Roles              RoleSet
	Permissions        PermissionMap
	Type               AccountType
	FirstName          string
	LastName           string
	EmployeeID         string
	Department         string
	Position           string
	Status             string
	RegistrationStatus string
	PhoneNumber        string
	NationalID         string
	AccessToken        string
	IssuedAt           time.Time
	ExpiresAt          time.Time
}

// DisplayName returns "First Last", falling back to the email address.
func (s Session) DisplayName() string {
	switch {
	case s.FirstName != "" && s.LastName != "":
		return s.FirstName + " " + s.LastName
	case s.FirstName != "":
		return s.FirstName
	default:
		return s.Email
	}
}

// RoleSet is the set of roles attached to a session. Order is preserved for display.
type RoleSet []Role

// NewRoleSet builds a RoleSet from raw strings, dropping empties and duplicates.
func NewRoleSet(raw []string) RoleSet {
	out := make(RoleSet, 0, len(raw))
	for _, r := range raw {
		role := Role(r)
		if r == "" || slices.Contains(out, role) {
			continue
		}
		out = append(out, role)
	}
	return out
}

// Has reports whether role is in the set.
func (rs RoleSet) Has(role Role) bool { return slices.Contains(rs, role) }

// IsOnlyConsultant reports whether the set is exactly {consultant}.
func (rs RoleSet) IsOnlyConsultant() bool {
	return len(rs) == 1 && rs.Has(RoleConsultant)
}

// Strings returns the roles as plain strings.
func (rs RoleSet) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}
