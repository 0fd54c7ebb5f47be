package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultdesk/erp-ui/internal/domain/access"
	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
)

func withState(state domainauth.State) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(SetSessionStateInContext(r.Context(), state)))
		})
	}
}

func gated(state domainauth.State) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	return Chain(ok,
		BrowserDetection(),
		withState(state),
		PermissionGate(PermissionGateConfig{
			Gate:    access.NewGate(access.DefaultConfig(), discardLogger()),
			Cookies: CookieConfig{Insecure: true},
			Logger:  discardLogger(),
		}),
	)
}

func activeState(roles []string, perms domainauth.PermissionMap) domainauth.State {
	return domainauth.Active(domainauth.Session{
		ID:          "u1",
		Email:       "a@b.com",
		Roles:       domainauth.NewRoleSet(roles),
		Permissions: perms,
		Type:        domainauth.AccountUser,
	})
}

func TestPermissionGate_PublicPathsSkipGate(t *testing.T) {
	h := gated(domainauth.Unauthenticated())
	for _, p := range []string{"/login", "/healthz", "/static/css/app.css", "/api/auth/session", "/auth/signed-out"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code, p)
	}
}

func TestPermissionGate_RootSkipsPermissionMap(t *testing.T) {
	state := activeState([]string{"finance"}, domainauth.PermissionMap{"/budget": {"read"}})
	rec := httptest.NewRecorder()
	gated(state).ServeHTTP(rec, getAs("/", ""))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestPermissionGate_UnauthenticatedBrowserGoesToLogin(t *testing.T) {
	rec := httptest.NewRecorder()
	gated(domainauth.Unauthenticated()).ServeHTTP(rec, getAs("/budget?year=2026", ""))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fbudget%3Fyear%3D2026", rec.Header().Get("Location"))
	assert.Nil(t, responseCookie(rec, DefaultTokenCookieName))
}

func TestPermissionGate_HTMXUsesHXRedirect(t *testing.T) {
	r := getAs("/budget", "")
	r.Header.Set("HX-Request", "true")
	r.Header.Set("HX-Current-Url", "http://localhost/projects?page=2")
	rec := httptest.NewRecorder()
	gated(domainauth.Unauthenticated()).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fprojects%3Fpage%3D2", rec.Header().Get("HX-Redirect"))
}

func TestPermissionGate_ErroredSessionIsSignedOut(t *testing.T) {
	rec := httptest.NewRecorder()
	gated(domainauth.Errored(domainauth.ReasonInvalidAccessToken)).ServeHTTP(rec, getAs("/projects", "garbage"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), LoginPath)
	c := responseCookie(rec, DefaultTokenCookieName)
	require.NotNil(t, c)
	assert.Negative(t, c.MaxAge)
}

func TestPermissionGate_APIRequestsGetJSON(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/budget", nil)
		r.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		gated(domainauth.Unauthenticated()).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "authentication_required", body["error"])
	})

	t.Run("forbidden", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/budget", nil)
		r.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		gated(activeState([]string{"consultant"}, nil)).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestPermissionGate_Decisions(t *testing.T) {
	finance := domainauth.PermissionMap{"/budget": {"read"}, "/analytics": {"read"}}
	tests := []struct {
		name   string
		state  domainauth.State
		path   string
		status int
		target string
	}{
		{name: "permitted by map", state: activeState([]string{"finance"}, finance), path: "/budget/b-1", status: http.StatusTeapot},
		{name: "outside map", state: activeState([]string{"finance"}, finance), path: "/users", status: http.StatusSeeOther, target: ForbiddenPath},
		{name: "consultant denylisted", state: activeState([]string{"consultant"}, nil), path: "/budget", status: http.StatusSeeOther, target: ForbiddenPath},
		{name: "consultant dashboard", state: activeState([]string{"consultant"}, nil), path: "/analytics", status: http.StatusTeapot},
		{name: "consultant with second role", state: activeState([]string{"consultant", "admin"}, nil), path: "/budget", status: http.StatusTeapot},
		{name: "consultant user picker bypass", state: activeState([]string{"consultant"}, nil), path: "/users?pick=1&returnTo=%2Fprojects", status: http.StatusTeapot},
		{name: "dot segments cannot escape static", state: activeState([]string{"consultant"}, nil), path: "/static/../budget", status: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := getAs(tt.path, "")
			rec := httptest.NewRecorder()
			gated(tt.state).ServeHTTP(rec, r)

			assert.Equal(t, tt.status, rec.Code)
			if tt.target != "" {
				assert.Equal(t, tt.target, rec.Header().Get("Location"))
			}
		})
	}
}

func TestIsPublicPath(t *testing.T) {
	tests := map[string]bool{
		"/login":            true,
		"/login/":           true,
		"/unauthorized":     true,
		"/static/js/app.js": true,
		"/api/auth/login":   true,
		"/static/../budget": false,
		"/api/authz":        false,
		"/api/auth":         false,
		"/budget":           false,
		"/":                 true,
		"":                  false,
		"/loginx":           false,
		"/metrics":          true,
	}
	for p, want := range tests {
		assert.Equal(t, want, IsPublicPath(p), p)
	}
}
