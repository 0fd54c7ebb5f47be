package httpx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/mocks"
	"github.com/consultdesk/erp-ui/internal/ports"
	"github.com/consultdesk/erp-ui/internal/testutil"
)

func financeToken(t *testing.T) string {
	t.Helper()
	return testutil.NewClaims().
		WithRoles("finance").
		WithPermissions(domainauth.PermissionMap{"/budget": {"read"}, "/analytics": {"read"}}).
		Mint(t)
}

func TestModuleList_RendersRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockModuleReader(ctrl)
	env := newTestEnv(t, testEnvOptions{Reader: reader})
	token := financeToken(t)

	reader.EXPECT().List(gomock.Any(), token, "budget").Return([]ports.Record{
		{"_id": "b-1", "name": "Laptops", "project": "Nairobi water", "amount": 1250000.0, "status": "approved"},
		{"_id": "b-2", "name": "Field travel", "project": "Kisumu roads", "amount": 98000.5, "status": "pending"},
	}, nil)

	rec := env.do(getAs("/budget", token))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<a href="/budget/b-1">Laptops</a>`)
	assert.Contains(t, body, "Kisumu roads")
	assert.Contains(t, body, "98000.50")
}

func TestModuleList_HTMXGetsFragment(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockModuleReader(ctrl)
	env := newTestEnv(t, testEnvOptions{Reader: reader})
	token := financeToken(t)
	reader.EXPECT().List(gomock.Any(), token, "budget").Return(nil, nil)

	r := getAs("/budget", token)
	r.Header.Set("HX-Request", "true")
	rec := env.do(r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No records yet.")
	assert.NotContains(t, rec.Body.String(), "<!doctype html>")
}

func TestModuleRecord_Renders(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockModuleReader(ctrl)
	env := newTestEnv(t, testEnvOptions{Reader: reader})
	token := financeToken(t)

	reader.EXPECT().Get(gomock.Any(), token, "budget", "b-1").
		Return(ports.Record{"_id": "b-1", "name": "Laptops", "approved": true}, nil)

	rec := env.do(getAs("/budget/b-1", token))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Laptops")
	assert.Contains(t, rec.Body.String(), "yes")
}

func TestModuleHandlers_BackendErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		location string
		signOut  bool
		body     string
	}{
		{
			name:     "token rejected by backend",
			err:      apperrors.InvalidAccessToken(errors.New("401 from backend")),
			status:   http.StatusSeeOther,
			location: "/login?redirect_uri=%2Fbudget%2Fb-9",
			signOut:  true,
		},
		{
			name:     "backend denies access",
			err:      apperrors.PermissionDenied("/budget/b-9"),
			status:   http.StatusSeeOther,
			location: ForbiddenPath,
		},
		{
			name:   "missing record",
			err:    apperrors.NotFound("budget b-9"),
			status: http.StatusNotFound,
			body:   "does not exist",
		},
		{
			name:   "backend unreachable",
			err:    apperrors.BackendUnreachable(errors.New("timeout")),
			status: http.StatusServiceUnavailable,
			body:   "Service unavailable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := mocks.NewMockModuleReader(ctrl)
			env := newTestEnv(t, testEnvOptions{Reader: reader})
			token := financeToken(t)
			reader.EXPECT().Get(gomock.Any(), token, "budget", "b-9").Return(nil, tt.err)

			rec := env.do(getAs("/budget/b-9", token))

			assert.Equal(t, tt.status, rec.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get("Location"))
			}
			if tt.body != "" {
				assert.Contains(t, rec.Body.String(), tt.body)
			}
			c := responseCookie(rec, DefaultTokenCookieName)
			if tt.signOut {
				require.NotNil(t, c)
				assert.Negative(t, c.MaxAge)
			} else {
				assert.Nil(t, c)
			}
		})
	}
}

func TestModuleList_ConsultantNeverReachesBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockModuleReader(ctrl) // no expectations: any call fails the test
	env := newTestEnv(t, testEnvOptions{Reader: reader})

	rec := env.do(getAs("/budget", testutil.NewClaims().WithRoles("consultant").Mint(t)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, ForbiddenPath, rec.Header().Get("Location"))
}

func TestAnalytics_ShowsPermittedTiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockModuleReader(ctrl)
	env := newTestEnv(t, testEnvOptions{Reader: reader})
	token := financeToken(t)

	reader.EXPECT().List(gomock.Any(), token, "budget").
		Return([]ports.Record{{"_id": "1"}, {"_id": "2"}, {"_id": "3"}}, nil)

	rec := env.do(getAs("/analytics", token))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/budget"`)
	assert.NotContains(t, body, `href="/users"`)
	assert.Contains(t, body, `<div class="tile__value">3</div>`)
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	rec := env.do(getAs("/nowhere", testutil.NewClaims().Mint(t)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}
