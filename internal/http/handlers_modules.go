package httpx

import (
	"net/http"

	"github.com/consultdesk/erp-ui/internal/domain/erp"
)

// ModuleList renders the records of module m.
// GET /{module}.
func (h *UIHandlers) ModuleList(m erp.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetUserSessionFromContext(r.Context())
		if !ok {
			redirect(w, r, loginURL(r.URL.RequestURI()))
			return
		}
		recs, err := h.Modules.List(r.Context(), sess.AccessToken, m)
		if err != nil {
			h.handleBackendError(w, r, err)
			return
		}
		data := h.layout(r, layoutParams{Page: PageModuleList, Title: m.Title, NavActive: m.Key})
		data.Module = &m
		data.Records = recs
		h.page(w, r, http.StatusOK, &data)
	}
}

// ModuleRecord renders a single record of module m.
// GET /{module}/{id}.
func (h *UIHandlers) ModuleRecord(m erp.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetUserSessionFromContext(r.Context())
		if !ok {
			redirect(w, r, loginURL(r.URL.RequestURI()))
			return
		}
		rec, err := h.Modules.Get(r.Context(), sess.AccessToken, m, r.PathValue("id"))
		if err != nil {
			h.handleBackendError(w, r, err)
			return
		}
		data := h.layout(r, layoutParams{Page: PageModuleRecord, Title: m.Title, NavActive: m.Key})
		data.Module = &m
		data.Record = rec
		h.page(w, r, http.StatusOK, &data)
	}
}
