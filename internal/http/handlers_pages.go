package httpx

import (
	"net/http"
	"strings"
)

// Root sends the browser to the dashboard.
// GET /.
func (h *UIHandlers) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, HomePath, http.StatusSeeOther)
}

// Unauthorized is where the permission gate sends denied requests.
// GET /unauthorized.
func (h *UIHandlers) Unauthorized(w http.ResponseWriter, r *http.Request) {
	data := h.layout(r, layoutParams{Page: PageUnauthorized, Title: "Access denied"})
	h.page(w, r, http.StatusForbidden, &data)
}

// Verify tells an account that still needs OTP verification where to go next.
// GET /verify?email=<address>.
func (h *UIHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	data := h.layout(r, layoutParams{Page: PageVerify, Title: "Verify your account"})
	data.Email = strings.TrimSpace(r.URL.Query().Get("email"))
	h.page(w, r, http.StatusOK, &data)
}

// Register is the public entry point for new accounts.
// GET /register.
func (h *UIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	data := h.layout(r, layoutParams{Page: PageRegister, Title: "Create an account"})
	h.page(w, r, http.StatusOK, &data)
}

// Profile renders the hydrated session.
// GET /profile.
func (h *UIHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		redirect(w, r, loginURL(r.URL.RequestURI()))
		return
	}
	data := h.layout(r, layoutParams{Page: PageProfile, Title: "Profile"})
	data.Session = sess
	h.page(w, r, http.StatusOK, &data)
}
