package httpx

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	erpui "github.com/consultdesk/erp-ui"
	"github.com/consultdesk/erp-ui/internal/domain/access"
	"github.com/consultdesk/erp-ui/internal/domain/erp"
	"github.com/consultdesk/erp-ui/internal/observability/metrics"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth    SessionService
	Modules ModuleService
	Gate    *access.Gate
	Metrics *metrics.Metrics
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	HealthChecks   []HealthCheck
	// ForbiddenPath is where denied browser requests go (default /unauthorized).
	ForbiddenPath string
	Cookies       CookieConfig
	// TemplateFS and StaticFS override the embedded assets (tests, dev mode).
	TemplateFS fs.FS
	StaticFS   fs.FS
	IsDev      bool
	Logger     *slog.Logger
}

// NewRouter creates the HTTP handler with the full middleware chain:
// Recover, RequestID, Logging, BrowserDetection, SessionLoader, CSRF and the permission gate.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gate := services.Gate
	if gate == nil {
		gate = access.NewGate(access.DefaultConfig(), logger)
	}

	templateFS, staticFS, err := resolveAssets(services)
	if err != nil {
		return nil, err
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: templateFS, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	forbidden := services.ForbiddenPath
	if forbidden == "" {
		forbidden = ForbiddenPath
	}

	ui := &UIHandlers{
		T:             tr,
		Auth:          services.Auth,
		Modules:       services.Modules,
		Gate:          gate,
		Cookies:       services.Cookies,
		ForbiddenPath: forbidden,
		Logger:        logger,
	}
	api := &AuthHandlers{Svc: services.Auth, Cookies: services.Cookies, Logger: logger}

	mux := http.NewServeMux()
	registerAuthRoutes(mux, ui, api)
	registerPageRoutes(mux, ui)
	registerModuleRoutes(mux, ui)

	health := healthHandler(services.HealthChecks)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)
	if services.MetricsHandler != nil {
		mux.Handle("GET /metrics", services.MetricsHandler)
	}
	mux.Handle("GET /static/", staticHandler(staticFS, services.IsDev))
	mux.HandleFunc("/", ui.NotFound)

	return Chain(mux,
		Recover(logger),
		RequestID(),
		Logging(logger),
		BrowserDetection(),
		SessionLoader(services.Auth, services.Cookies),
		CSRFProtection(CSRFConfig{CookieDomain: services.Cookies.Domain, Insecure: services.Cookies.Insecure}),
		PermissionGate(PermissionGateConfig{
			Gate:          gate,
			Cookies:       services.Cookies,
			Metrics:       services.Metrics,
			Logger:        logger,
			ForbiddenPath: forbidden,
		}),
	), nil
}

// resolveAssets picks the template and static filesystems: explicit overrides,
// then the working tree in dev mode, then the embedded copies.
func resolveAssets(services RouterServices) (fs.FS, fs.FS, error) {
	templateFS, staticFS := services.TemplateFS, services.StaticFS
	if templateFS == nil {
		if services.IsDev {
			templateFS = os.DirFS(TemplatePathFromRoot)
		} else {
			sub, err := fs.Sub(erpui.TemplateFS, TemplatePathFromRoot)
			if err != nil {
				return nil, nil, fmt.Errorf("embedded templates: %w", err)
			}
			templateFS = sub
		}
	}
	if staticFS == nil {
		if services.IsDev {
			staticFS = os.DirFS("frontend/static")
		} else {
			sub, err := fs.Sub(erpui.StaticFS, "frontend/static")
			if err != nil {
				return nil, nil, fmt.Errorf("embedded static assets: %w", err)
			}
			staticFS = sub
		}
	}
	return templateFS, staticFS, nil
}

func registerAuthRoutes(mux *http.ServeMux, ui *UIHandlers, api *AuthHandlers) {
	mux.HandleFunc("GET "+LoginPath, ui.LoginPage)
	mux.HandleFunc("POST "+LoginPath, ui.LoginSubmit)
	mux.HandleFunc("POST "+LogoutPath, ui.Logout)
	mux.HandleFunc("GET "+SignedOutPath, ui.SignedOut)

	mux.HandleFunc("POST /api/auth/login", api.Login)
	mux.HandleFunc("POST /api/auth/logout", api.Logout)
	mux.HandleFunc("GET /api/auth/session", api.Session)
}

func registerPageRoutes(mux *http.ServeMux, ui *UIHandlers) {
	mux.HandleFunc("GET /{$}", ui.Root)
	mux.HandleFunc("GET "+HomePath, ui.Analytics)
	mux.HandleFunc("GET "+ProfilePath, ui.Profile)
	mux.HandleFunc("GET "+ForbiddenPath, ui.Unauthorized)
	mux.HandleFunc("GET "+VerifyPath, ui.Verify)
	mux.HandleFunc("GET "+RegisterPath, ui.Register)
}

func registerModuleRoutes(mux *http.ServeMux, ui *UIHandlers) {
	for _, m := range erp.Catalog() {
		mux.Handle("GET "+m.Path, ui.ModuleList(m))
		mux.Handle("GET "+m.Path+"/{id}", ui.ModuleRecord(m))
	}
}

// staticHandler serves /static/* from fsys.
func staticHandler(fsys fs.FS, isDev bool) http.Handler {
	files := http.StripPrefix("/static/", http.FileServerFS(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		files.ServeHTTP(w, r)
	})
}
