package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/consultdesk/erp-ui/internal/ports"
)

// DefaultTokenCookieName is the cookie holding the backend bearer token.
const DefaultTokenCookieName = "token"

// CookieConfig describes the token cookie.
type CookieConfig struct {
	Name   string
	Domain string
	// Insecure drops the Secure attribute on plain-HTTP requests (dev mode only).
	Insecure bool
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultTokenCookieName
	}
	return c.Name
}

// CookieTokenStore is the ports.TokenStore backed by the browser cookie for one
// request/response pair. Writes are visible to later Gets on the same store.
type CookieTokenStore struct {
	w   http.ResponseWriter
	r   *http.Request
	cfg CookieConfig
	now func() time.Time

	token string
	ok    bool
}

var _ ports.TokenStore = (*CookieTokenStore)(nil)

// NewCookieTokenStore reads the token cookie from r; Set and Clear write to w.
func NewCookieTokenStore(w http.ResponseWriter, r *http.Request, cfg CookieConfig) *CookieTokenStore {
	s := &CookieTokenStore{w: w, r: r, cfg: cfg, now: time.Now}
	if c, err := r.Cookie(cfg.name()); err == nil && c.Value != "" {
		s.token, s.ok = c.Value, true
	}
	return s
}

// Get returns the current token.
func (s *CookieTokenStore) Get() (string, bool) { return s.token, s.ok }

// Set writes the token cookie expiring at expiresAt.
func (s *CookieTokenStore) Set(token string, expiresAt time.Time) {
	maxAge := int(expiresAt.Sub(s.now()).Seconds())
	if token == "" || maxAge <= 0 {
		s.Clear()
		return
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.cfg.name(),
		Value:    token,
		Path:     "/",
		Domain:   s.cfg.Domain,
		Expires:  expiresAt.UTC(),
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secureCookie(s.r, s.cfg.Insecure),
		SameSite: http.SameSiteLaxMode,
	})
	s.token, s.ok = token, true
}

// Clear expires the token cookie.
func (s *CookieTokenStore) Clear() {
	clearCookie(s.w, s.r, cookieParams{Name: s.cfg.name(), Domain: s.cfg.Domain, Insecure: s.cfg.Insecure})
	s.token, s.ok = "", false
}

// cookieParams groups the attributes needed to delete a cookie.
type cookieParams struct {
	Name     string
	Domain   string
	Insecure bool
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func clearCookie(w http.ResponseWriter, r *http.Request, p cookieParams) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.Name,
		Value:    "",
		Path:     "/",
		Domain:   p.Domain,
		HttpOnly: true,
		Secure:   secureCookie(r, p.Insecure),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// secureCookie reports whether cookies written for r carry the Secure attribute:
// always outside dev mode, and in dev mode whenever the request arrived over TLS.
func secureCookie(r *http.Request, insecure bool) bool {
	if !insecure {
		return true
	}
	return r.TLS != nil || isForwardedHTTPS(r)
}

// isForwardedHTTPS checks if the request was forwarded over HTTPS.
// Handles comma-separated values in X-Forwarded-Proto header.
func isForwardedHTTPS(r *http.Request) bool {
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}
