package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consultdesk/erp-ui/internal/adapters/memory"
	"github.com/consultdesk/erp-ui/internal/adapters/tokenclaims"
	"github.com/consultdesk/erp-ui/internal/domain/access"
	authmocks "github.com/consultdesk/erp-ui/internal/mocks/auth"
	"github.com/consultdesk/erp-ui/internal/ports"
	"github.com/consultdesk/erp-ui/internal/service"
)

const testCSRF = "test-csrf-token"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv wires the router with real services over in-memory stores.
type testEnv struct {
	Handler   http.Handler
	Exchanger *authmocks.StubExchanger
	Profiles  *memory.ProfileStore
	Auth      *service.AuthService
}

type testEnvOptions struct {
	Reader ports.ModuleReader
}

func newTestEnv(t *testing.T, opts testEnvOptions) *testEnv {
	t.Helper()
	logger := discardLogger()
	exchanger := &authmocks.StubExchanger{Accounts: map[string]authmocks.StubAccount{}}
	profiles := memory.NewProfileStore()
	auth := service.NewAuthService(service.AuthServiceOptions{
		Exchanger: exchanger,
		Decoder:   tokenclaims.NewDecoder(),
		Profiles:  profiles,
		Logger:    logger,
	})
	reader := opts.Reader
	if reader == nil {
		reader = emptyReader{}
	}
	h, err := NewRouter(RouterServices{
		Auth:       auth,
		Modules:    service.NewModuleService(service.ModuleServiceOptions{Reader: reader, Logger: logger}),
		Gate:       access.NewGate(access.DefaultConfig(), logger),
		Cookies:    CookieConfig{Insecure: true},
		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS:   os.DirFS("../../frontend/static"),
		Logger:     logger,
	})
	require.NoError(t, err)
	return &testEnv{Handler: h, Exchanger: exchanger, Profiles: profiles, Auth: auth}
}

func (e *testEnv) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.Handler.ServeHTTP(rec, r)
	return rec
}

// emptyReader is a ModuleReader with no data.
type emptyReader struct{}

func (emptyReader) List(_ context.Context, _, _ string) ([]ports.Record, error) { return nil, nil }
func (emptyReader) Get(_ context.Context, _, _, _ string) (ports.Record, error) {
	return ports.Record{}, nil
}

// getAs builds a browser GET carrying the token cookie.
func getAs(target, token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.Header.Set("Accept", "text/html")
	if token != "" {
		r.AddCookie(&http.Cookie{Name: DefaultTokenCookieName, Value: token})
	}
	return r
}

// postForm builds a browser form POST with a valid CSRF pair.
func postForm(target string, form url.Values, token string) *http.Request {
	form.Set(DefaultCSRFCookieName, testCSRF)
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("Accept", "text/html")
	r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRF})
	if token != "" {
		r.AddCookie(&http.Cookie{Name: DefaultTokenCookieName, Value: token})
	}
	return r
}

// responseCookie returns the named Set-Cookie of rec.
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
