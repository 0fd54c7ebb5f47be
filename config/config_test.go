package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func parse(t *testing.T, vars map[string]string) AppConfig {
	t.Helper()
	var cfg AppConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()
	return cfg
}

func TestAppConfig_Defaults(t *testing.T) {
	cfg := parse(t, map[string]string{})

	if cfg.Auth.Mode != AuthModeAPI {
		t.Errorf("expected auth mode api, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Errorf("expected 12h token ttl, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.CookieName != "token" {
		t.Errorf("expected cookie name token, got %q", cfg.Auth.CookieName)
	}
	if cfg.Gate.ForbiddenPath != "/unauthorized" {
		t.Errorf("expected forbidden path /unauthorized, got %q", cfg.Gate.ForbiddenPath)
	}
	wantDeny := []string{"/contracts", "/claims", "/imprest", "/users", "/budget"}
	if !reflect.DeepEqual(cfg.Gate.ConsultantDenylist, wantDeny) {
		t.Errorf("expected denylist %v, got %v", wantDeny, cfg.Gate.ConsultantDenylist)
	}
	wantBypass := BypassRules{{Path: "/users", Query: []string{"pick", "returnTo"}}}
	if !reflect.DeepEqual(cfg.Gate.Bypass, wantBypass) {
		t.Errorf("expected bypass %v, got %v", wantBypass, cfg.Gate.Bypass)
	}
	if cfg.API.RecordsExpr != "data || @" {
		t.Errorf("unexpected records expression %q", cfg.API.RecordsExpr)
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis to be disabled by default")
	}
	if !cfg.Observability.Metrics.Enabled || cfg.Observability.Metrics.Namespace != "erp_ui" {
		t.Errorf("unexpected metrics config %+v", cfg.Observability.Metrics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestAppConfig_FromEnv(t *testing.T) {
	cfg := parse(t, map[string]string{
		"DEV":                      "true",
		"AUTH_MODE":                "MOCK",
		"AUTH_TOKEN_TTL":           "2h",
		"DEV_AUTH_EMAIL":           " fin@erp.test ",
		"DEV_AUTH_ROLES":           "finance; consultant ;",
		"DEV_AUTH_PERMISSIONS":     `{"/budget":["read"],"/analytics":["read"]}`,
		"API_BASE_URL":             "https://erp.example.com/api/",
		"API_MODULE_PATHS":         "salary-advances:/advances,users:/auth/users",
		"GATE_BYPASS":              "/users?pick&returnTo; /projects?embed",
		"GATE_CONSULTANT_DENYLIST": "/budget, /claims",
		"APP_COOKIE_DOMAIN":        ".ERP.example.com",
		"REDIS_ENABLED":            "true",
		"LOG_LEVEL":                "DEBUG",
	})

	if cfg.Auth.Mode != AuthModeMock {
		t.Errorf("expected mock mode, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("expected 2h, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.DevAuth.Email != "fin@erp.test" {
		t.Errorf("expected trimmed email, got %q", cfg.Auth.DevAuth.Email)
	}
	if !reflect.DeepEqual(cfg.Auth.DevAuth.Roles, []string{"finance", "consultant"}) {
		t.Errorf("unexpected roles %v", cfg.Auth.DevAuth.Roles)
	}
	if got := cfg.Auth.DevAuth.Permissions["/budget"]; !reflect.DeepEqual(got, []string{"read"}) {
		t.Errorf("unexpected permissions %v", cfg.Auth.DevAuth.Permissions)
	}
	if cfg.API.BaseURL != "https://erp.example.com/api" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.API.ModulePaths["salary-advances"] != "/advances" || cfg.API.ModulePaths["users"] != "/auth/users" {
		t.Errorf("unexpected module paths %v", cfg.API.ModulePaths)
	}
	if len(cfg.Gate.Bypass) != 2 || cfg.Gate.Bypass[1].Path != "/projects" {
		t.Errorf("unexpected bypass rules %+v", cfg.Gate.Bypass)
	}
	if !reflect.DeepEqual(cfg.Gate.ConsultantDenylist, []string{"/budget", "/claims"}) {
		t.Errorf("unexpected denylist %v", cfg.Gate.ConsultantDenylist)
	}
	if cfg.HTTP.CookieDomain != "erp.example.com" {
		t.Errorf("expected normalised cookie domain, got %q", cfg.HTTP.CookieDomain)
	}
	if cfg.Observability.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Observability.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config: %v", err)
	}
}

func TestAppConfig_ParseErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown auth mode":     {"AUTH_MODE": "oauth"},
		"bad permissions json":  {"DEV_AUTH_PERMISSIONS": "{"},
		"relative bypass path":  {"GATE_BYPASS": "users?pick"},
		"bypass without params": {"GATE_BYPASS": "/users"},
		"bad ttl":               {"AUTH_TOKEN_TTL": "soon"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			var cfg AppConfig
			if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{
			name:    "mock mode outside dev",
			mutate:  func(c *AppConfig) { c.Auth.Mode = AuthModeMock },
			wantErr: "requires DEV=true",
		},
		{
			name:    "api mode without base url",
			mutate:  func(c *AppConfig) { c.API.BaseURL = "" },
			wantErr: "API_BASE_URL",
		},
		{
			name:    "public suffix cookie domain",
			mutate:  func(c *AppConfig) { c.HTTP.CookieDomain = "co.uk" },
			wantErr: "APP_COOKIE_DOMAIN",
		},
		{
			name:    "single label cookie domain",
			mutate:  func(c *AppConfig) { c.HTTP.CookieDomain = "localhost" },
			wantErr: "APP_COOKIE_DOMAIN",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := parse(t, map[string]string{})
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAPIConfig_Sanitize(t *testing.T) {
	cfg := APIConfig{Timeout: -1, RecordsExpr: " ", DashboardConcurrency: 100}
	cfg.Sanitize()

	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
	if cfg.RecordsExpr != "data || @" {
		t.Errorf("expected default expression, got %q", cfg.RecordsExpr)
	}
	if cfg.DashboardConcurrency != 16 {
		t.Errorf("expected concurrency clamped to 16, got %d", cfg.DashboardConcurrency)
	}
}

func TestRedisConfig_Sanitize(t *testing.T) {
	cfg := RedisConfig{UseCluster: true, ClusterNodes: []string{" ", ""}, SentinelNodes: []string{" a:1 "}}
	cfg.Sanitize()

	if cfg.UseCluster {
		t.Error("expected cluster mode off without nodes")
	}
	if !reflect.DeepEqual(cfg.SentinelNodes, []string{"a:1"}) {
		t.Errorf("unexpected sentinel nodes %v", cfg.SentinelNodes)
	}
	if cfg.KeyPrefix == "" {
		t.Error("expected default key prefix")
	}
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := AppConfig{}
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Error("expected NODE_ENV=development to enable dev mode")
	}
}
