package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/consultdesk/erp-ui/internal/domain/access"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/observability/metrics"
)

// PermissionGateConfig configures PermissionGate.
type PermissionGateConfig struct {
	Gate    *access.Gate
	Cookies CookieConfig
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// ForbiddenPath is where denied requests are sent (default /unauthorized).
	ForbiddenPath string
}

// PermissionGate returns a middleware that runs every non-public request through
// the access gate. It expects SessionLoader to run first.
//
// Browser requests are redirected (HX-Redirect for htmx); API requests get a JSON
// 401 or 403. Errored sessions additionally lose their token cookie.
func PermissionGate(cfg PermissionGateConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	forbidden := cfg.ForbiddenPath
	if forbidden == "" {
		forbidden = ForbiddenPath
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			state := SessionStateFromContext(r.Context())
			d := cfg.Gate.Decide(access.Request{Path: r.URL.EscapedPath(), Query: r.URL.Query()}, state)
			cfg.Metrics.ObserveGate(d.Outcome.String(), d.Reason, d.Degraded)

			switch d.Outcome {
			case access.Allow:
				next.ServeHTTP(w, r)
				return
			case access.RedirectLogin:
				if d.ForceSignOut {
					NewCookieTokenStore(w, r, cfg.Cookies).Clear()
					logger.InfoContext(r.Context(), "signing out unusable session",
						"path", r.URL.Path, "reason", state.Reason())
				}
				if !IsBrowserRequest(r) {
					WriteError(w, ErrorParams{
						Code:    http.StatusUnauthorized,
						ErrCode: "authentication_required",
						Err:     errors.New("authentication required"),
					})
					return
				}
				redirect(w, r, loginURL(redirectPathForRequest(r)))
			default:
				logger.DebugContext(r.Context(), "access denied",
					"path", d.Path, "reason", d.Reason, "matched_key", d.MatchedKey)
				if !IsBrowserRequest(r) {
					writeAppError(w, apperrors.PermissionDenied(d.Path))
					return
				}
				redirect(w, r, forbidden)
			}
		})
	}
}

//nolint:gochecknoglobals // static read-only lookup
var publicPaths = []string{
	"/", // only redirects to HomePath, which is gated
	LoginPath,
	LogoutPath,
	RegisterPath,
	VerifyPath,
	ForbiddenPath,
	SignedOutPath,
	"/healthz",
	"/metrics",
	"/favicon.ico",
}

//nolint:gochecknoglobals // static read-only lookup
var publicRoots = []string{"/api/auth", "/static"}

// IsPublicPath reports whether p is served without a session. p is cleaned first
// so dot segments cannot climb out of a public root.
func IsPublicPath(p string) bool {
	if p == "" {
		return false
	}
	p = path.Clean(p)
	for _, pub := range publicPaths {
		if p == pub {
			return true
		}
	}
	for _, root := range publicRoots {
		if strings.HasPrefix(p, root+"/") {
			return true
		}
	}
	return false
}
