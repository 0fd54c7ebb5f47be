package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/consultdesk/erp-ui/internal/domain/access"
	"github.com/consultdesk/erp-ui/internal/domain/erp"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/ports"
	"github.com/consultdesk/erp-ui/internal/service"
)

// ModuleService is the part of service.ModuleService the UI depends on.
type ModuleService interface {
	List(ctx context.Context, token string, m erp.Module) ([]ports.Record, error)
	Get(ctx context.Context, token string, m erp.Module, id string) (ports.Record, error)
	Counts(ctx context.Context, token string, modules []erp.Module) []service.ModuleCount
}

// UIHandlers serves the HTML pages.
type UIHandlers struct {
	T       *TemplateRenderer
	Auth    SessionService
	Modules ModuleService
	Gate    *access.Gate
	Cookies CookieConfig
	// ForbiddenPath is where a backend denial is redirected (default /unauthorized).
	ForbiddenPath string
	Logger        *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// page renders data for r, falling back to a plain-text 500 when the template fails.
func (h *UIHandlers) page(w http.ResponseWriter, r *http.Request, status int, data *PageData) {
	if err := h.T.Render(w, r, status, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *UIHandlers) layout(r *http.Request, p layoutParams) PageData {
	return PageData{Layout: buildLayout(r, h.Gate, p)}
}

// renderError shows the error page for err.
func (h *UIHandlers) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	view := &ErrorView{Status: status, Title: http.StatusText(status), Message: "Something went wrong, please try again"}
	switch {
	case apperrors.IsNotFound(err):
		view.Message = "The record you are looking for does not exist."
	case apperrors.IsValidation(err):
		view.Message = err.Error()
	case apperrors.IsBackendUnreachable(err):
		view.Title = "Service unavailable"
	}
	if status >= http.StatusInternalServerError {
		h.logger().ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	data := h.layout(r, layoutParams{Page: PageError, Title: view.Title})
	data.Error = view
	h.page(w, r, status, &data)
}

// handleBackendError deals with errors from module reads: a token the backend
// rejects signs the user out, a backend denial goes to the forbidden page and
// everything else renders the error page.
func (h *UIHandlers) handleBackendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperrors.IsInvalidAccessToken(err):
		h.Auth.Logout(r.Context(), NewCookieTokenStore(w, r, h.Cookies))
		redirect(w, r, loginURL(redirectPathForRequest(r)))
	case apperrors.IsPermissionDenied(err):
		target := h.ForbiddenPath
		if target == "" {
			target = ForbiddenPath
		}
		redirect(w, r, target)
	case apperrors.IsCanceled(err):
		// client went away
	default:
		h.renderError(w, r, err)
	}
}

// NotFound renders the 404 page.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	data := h.layout(r, layoutParams{Page: PageNotFound, Title: "Not found"})
	h.page(w, r, http.StatusNotFound, &data)
}
