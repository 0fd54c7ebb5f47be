package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieTokenStore_Get(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: "abc"})

	s := NewCookieTokenStore(httptest.NewRecorder(), r, CookieConfig{})
	token, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	empty := NewCookieTokenStore(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), CookieConfig{})
	_, ok = empty.Get()
	assert.False(t, ok)
}

func TestCookieTokenStore_SetWritesAttributes(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := httptest.NewRecorder()
	s := NewCookieTokenStore(rec, httptest.NewRequest(http.MethodPost, "/login", nil),
		CookieConfig{Name: "erp_token", Domain: "erp.example.com"})
	s.now = func() time.Time { return now }

	s.Set("tok", now.Add(12*time.Hour))

	c := responseCookie(rec, "erp_token")
	require.NotNil(t, c)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, "erp.example.com", c.Domain)
	assert.Equal(t, 12*60*60, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	token, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)
}

func TestCookieTokenStore_SecureAttribute(t *testing.T) {
	tests := []struct {
		name     string
		insecure bool
		proto    string
		want     bool
	}{
		{name: "production always secure", want: true},
		{name: "dev over plain http", insecure: true, want: false},
		{name: "dev behind https proxy", insecure: true, proto: "http, https", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/login", nil)
			if tt.proto != "" {
				r.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			rec := httptest.NewRecorder()
			NewCookieTokenStore(rec, r, CookieConfig{Insecure: tt.insecure}).Set("tok", time.Now().Add(time.Hour))

			c := responseCookie(rec, DefaultTokenCookieName)
			require.NotNil(t, c)
			assert.Equal(t, tt.want, c.Secure)
		})
	}
}

func TestCookieTokenStore_Clear(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: "abc"})
	rec := httptest.NewRecorder()

	s := NewCookieTokenStore(rec, r, CookieConfig{})
	s.Clear()

	c := responseCookie(rec, DefaultTokenCookieName)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
	_, ok := s.Get()
	assert.False(t, ok)
}

func TestCookieTokenStore_SetExpiredClears(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewCookieTokenStore(rec, httptest.NewRequest(http.MethodGet, "/", nil), CookieConfig{})

	s.Set("tok", time.Now().Add(-time.Minute))

	c := responseCookie(rec, DefaultTokenCookieName)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}
