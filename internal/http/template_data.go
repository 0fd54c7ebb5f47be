package httpx

import (
	"net/http"

	"github.com/consultdesk/erp-ui/internal/domain/access"
	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
	"github.com/consultdesk/erp-ui/internal/domain/erp"
	"github.com/consultdesk/erp-ui/internal/http/ui/viewmodel"
	"github.com/consultdesk/erp-ui/internal/ports"
	"github.com/consultdesk/erp-ui/internal/service"
)

// PageData is the view model handed to every page template.
type PageData struct {
	viewmodel.Layout

	Login   *LoginForm
	Session *domainauth.Session
	Tiles   []service.ModuleCount
	Module  *erp.Module
	Records []ports.Record
	Record  ports.Record
	Error   *ErrorView
	// Email is shown on the verification page.
	Email string
	// RedirectURI is where the signed-out page's sign-in button leads.
	RedirectURI string
}

// LoginForm carries the login form state across re-renders.
type LoginForm struct {
	Email       string
	Type        string
	RedirectURI string
}

// ErrorView describes an error page.
type ErrorView struct {
	Status  int
	Title   string
	Message string
}

// layoutParams groups the inputs of buildLayout.
type layoutParams struct {
	Page  string
	Title string
	// NavActive is the module key highlighted in the navigation.
	NavActive string
}

// buildLayout fills the shared chrome for r: user block and the navigation
// entries the session may open.
func buildLayout(r *http.Request, gate *access.Gate, p layoutParams) viewmodel.Layout {
	l := viewmodel.Layout{
		Title:       p.Title + " · ERP",
		PageTitle:   p.Title,
		CurrentPage: p.Page,
		CSRFToken:   GetCSRFToken(r),
		RequestID:   RequestIDFromContext(r.Context()),
	}
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		return l
	}
	l.IsAuthenticated = true
	l.User = &viewmodel.User{
		Name:       sess.DisplayName(),
		Email:      sess.Email,
		Roles:      sess.Roles.Strings(),
		Type:       string(sess.Type),
		Department: sess.Department,
	}
	l.Nav = append(l.Nav, viewmodel.NavItem{Title: "Analytics", Path: HomePath, Active: p.Page == PageAnalytics})
	for _, m := range permittedModules(gate, *sess) {
		l.Nav = append(l.Nav, viewmodel.NavItem{Title: m.Title, Path: m.Path, Active: p.NavActive == m.Key})
	}
	return l
}

// permittedModules filters the catalog down to what the gate lets sess open.
func permittedModules(gate *access.Gate, sess domainauth.Session) []erp.Module {
	var out []erp.Module
	for _, m := range erp.Catalog() {
		if gate == nil || gate.Permits(sess, m.Path) {
			out = append(out, m)
		}
	}
	return out
}
