package httpx

import (
	"net/http"
)

// Analytics renders the dashboard: one tile per module the session may open,
// with the record count fetched from the backend.
// GET /analytics.
func (h *UIHandlers) Analytics(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		redirect(w, r, loginURL(r.URL.RequestURI()))
		return
	}
	data := h.layout(r, layoutParams{Page: PageAnalytics, Title: "Analytics"})
	if mods := permittedModules(h.Gate, *sess); len(mods) > 0 {
		data.Tiles = h.Modules.Counts(r.Context(), sess.AccessToken, mods)
	}
	data.Session = sess
	h.page(w, r, http.StatusOK, &data)
}
