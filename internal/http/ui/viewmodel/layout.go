package viewmodel

// User represents the authenticated user context exposed to templates.
type User struct {
	Name       string
	Email      string
	Roles      []string
	Type       string
	Department string
}

// NavItem is one entry of the side navigation.
type NavItem struct {
	Title  string
	Path   string
	Active bool
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	RequestID       string
	IsAuthenticated bool
	User            *User
	Nav             []NavItem
	// Toast is a one-off message shown above the page content.
	Toast string
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}

// LayoutData implements LayoutProvider.
func (l *Layout) LayoutData() *Layout { return l }
