package auth

// NewSession maps decoded claims onto a Session. Claims are authoritative; the
// optional login profile only fills attributes the token does not carry, and only
// supplies permissions when the token has no permissions claim at all.
func NewSession(token string, c Claims, p *Profile) Session {
	s := Session{
		ID:                 c.Subject,
		Email:              c.Email,
		Roles:              NewRoleSet(c.Roles),
		Permissions:        c.Permissions,
		Type:               c.Type,
		FirstName:          c.FirstName,
		LastName:           c.LastName,
		EmployeeID:         c.EmployeeID,
		Department:         c.Department,
		Position:           c.Position,
		Status:             c.Status,
		RegistrationStatus: c.RegistrationStatus,
		PhoneNumber:        c.PhoneNumber,
		NationalID:         c.NationalID,
		AccessToken:        token,
	}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	if p != nil {
		fillFromProfile(&s, *p)
	}
	if s.Type == "" {
		s.Type = AccountUser
	}
	return s
}

func fillFromProfile(s *Session, p Profile) {
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&s.ID, p.ID)
	fill(&s.Email, p.Email)
	fill(&s.FirstName, p.FirstName)
	fill(&s.LastName, p.LastName)
	fill(&s.EmployeeID, p.EmployeeID)
	fill(&s.Department, p.Department)
	fill(&s.Position, p.Position)
	fill(&s.Status, p.Status)
	fill(&s.RegistrationStatus, p.RegistrationStatus)
	fill(&s.PhoneNumber, p.PhoneNumber)
	fill(&s.NationalID, p.NationalID)
	if s.Type == "" {
		s.Type = p.Type
	}
	if len(s.Roles) == 0 {
		s.Roles = NewRoleSet(p.Roles)
	}
	if s.Permissions == nil {
		s.Permissions = p.Permissions
	}
}
