package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/http/validation"
	"github.com/consultdesk/erp-ui/internal/ports"
)

// Login form messages.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgTryAgain           = "Something went wrong, please try again"

	maxEmailLen    = 254
	maxPasswordLen = 256
)

// LoginPage renders the sign-in form.
// GET /login?redirect_uri=<optional_redirect>.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	back := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	if SessionStateFromContext(r.Context()).IsActive() {
		http.Redirect(w, r, postLoginTarget(back), http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, loginView{
		Form: LoginForm{Email: r.URL.Query().Get("email"), RedirectURI: back},
	})
}

//nolint:gochecknoglobals // static read-only lookup
var accountTypes = []string{string(domainauth.AccountUser), string(domainauth.AccountOrganization)}

// LoginSubmit exchanges the posted credentials for a session cookie.
// POST /login.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, loginView{Toast: "Invalid form submission"})
		return
	}
	form := LoginForm{
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Type:        validation.Canonical(r.PostFormValue("type"), accountTypes...),
		RedirectURI: safeRedirectPath(r.PostFormValue("redirect_uri")),
	}
	fv := validation.New().
		Validate("email", form.Email, validation.Required("Email", maxEmailLen), validation.Email("Email")).
		Validate("password", r.PostFormValue("password"), validation.Required("Password", maxPasswordLen)).
		Validate("type", form.Type, validation.OneOf("Account type", accountTypes...))
	if _, msg, invalid := fv.First(); invalid {
		h.renderLogin(w, r, http.StatusBadRequest, loginView{Form: form, Toast: msg})
		return
	}

	in := ports.LoginInput{
		Email:    form.Email,
		Password: r.PostFormValue("password"),
		Type:     domainauth.AccountType(form.Type),
	}

	_, err := h.Auth.Login(r.Context(), NewCookieTokenStore(w, r, h.Cookies), in)
	if err == nil {
		redirect(w, r, postLoginTarget(form.RedirectURI))
		return
	}

	switch {
	case apperrors.IsVerificationRequired(err):
		redirect(w, r, VerifyPath+"?"+url.Values{"email": {form.Email}}.Encode())
	case apperrors.IsValidation(err):
		h.renderLogin(w, r, http.StatusBadRequest, loginView{Form: form, Toast: appMessage(err)})
	case apperrors.IsInvalidCredentials(err):
		h.renderLogin(w, r, http.StatusUnauthorized, loginView{Form: form, Toast: msgInvalidCredentials})
	case apperrors.IsBackendUnreachable(err):
		h.logger().WarnContext(r.Context(), "login backend unreachable", "error", err)
		h.renderLogin(w, r, http.StatusServiceUnavailable, loginView{Form: form, Toast: msgTryAgain})
	default:
		h.logger().ErrorContext(r.Context(), "login failed", "error", err)
		h.renderLogin(w, r, http.StatusBadGateway, loginView{Form: form, Toast: msgTryAgain})
	}
}

type loginView struct {
	Form  LoginForm
	Toast string
}

func (h *UIHandlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, v loginView) {
	data := h.layout(r, layoutParams{Page: PageLogin, Title: "Sign in"})
	data.Login = &v.Form
	data.Toast = v.Toast
	h.page(w, r, status, &data)
}

// Logout clears the session and shows the signed-out page.
// POST /logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout(r.Context(), NewCookieTokenStore(w, r, h.Cookies))
	redirect(w, r, SignedOutPath)
}

// SignedOut renders the signed-out confirmation.
// GET /auth/signed-out?redirect_uri=<optional_redirect>.
func (h *UIHandlers) SignedOut(w http.ResponseWriter, r *http.Request) {
	data := h.layout(r, layoutParams{Page: PageSignedOut, Title: "Signed out"})
	data.RedirectURI = loginURL(r.URL.Query().Get("redirect_uri"))
	h.page(w, r, http.StatusOK, &data)
}

// postLoginTarget maps the root and the auth pages onto the dashboard.
func postLoginTarget(back string) string {
	back = safeRedirectPath(back)
	u, err := url.Parse(back)
	if err != nil || u.Path == "/" || IsPublicPath(u.Path) {
		return HomePath
	}
	return back
}

func appMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// AuthHandlers serves the JSON auth API used by scripts and the htmx client.
type AuthHandlers struct {
	Svc     SessionService
	Cookies CookieConfig
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login exchanges JSON credentials for the token cookie.
// POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var in ports.LoginInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	res, err := h.Svc.Login(r.Context(), NewCookieTokenStore(w, r, h.Cookies), in)
	if err != nil {
		if !apperrors.IsInvalidCredentials(err) && !apperrors.IsValidation(err) {
			h.logger().WarnContext(r.Context(), "api login failed", "error", err)
		}
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          newSessionUser(res.Session),
		ExpiresAt:     &res.ExpiresAt,
	})
}

// Logout clears the token cookie.
// POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Svc.Logout(r.Context(), NewCookieTokenStore(w, r, h.Cookies))
	WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// Session returns the current authentication status.
// GET /api/auth/session.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	state := SessionStateFromContext(r.Context())
	resp := sessionResponse{Error: state.Reason()}
	if state.Kind() == domainauth.StateErrored {
		NewCookieTokenStore(w, r, h.Cookies).Clear()
	}
	if sess, ok := state.Session(); ok {
		resp.Authenticated = true
		resp.User = newSessionUser(*sess)
		if !sess.ExpiresAt.IsZero() {
			resp.ExpiresAt = &sess.ExpiresAt
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	Error         string       `json:"error,omitempty"`
	User          *sessionUser `json:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
}

type sessionUser struct {
	ID                 string                   `json:"id"`
	Email              string                   `json:"email"`
	Roles              []string                 `json:"roles"`
	Type               domainauth.AccountType   `json:"type"`
	FirstName          string                   `json:"firstName,omitempty"`
	LastName           string                   `json:"lastName,omitempty"`
	EmployeeID         string                   `json:"employeeId,omitempty"`
	Department         string                   `json:"department,omitempty"`
	Position           string                   `json:"position,omitempty"`
	Status             string                   `json:"status,omitempty"`
	RegistrationStatus string                   `json:"registrationStatus,omitempty"`
	Permissions        domainauth.PermissionMap `json:"permissions,omitempty"`
}

func newSessionUser(s domainauth.Session) *sessionUser {
	return &sessionUser{
		ID:                 s.ID,
		Email:              s.Email,
		Roles:              s.Roles.Strings(),
		Type:               s.Type,
		FirstName:          s.FirstName,
		LastName:           s.LastName,
		EmployeeID:         s.EmployeeID,
		Department:         s.Department,
		Position:           s.Position,
		Status:             s.Status,
		RegistrationStatus: s.RegistrationStatus,
		Permissions:        s.Permissions,
	}
}
