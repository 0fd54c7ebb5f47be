package config

import (
	"strings"
	"time"
)

// APIConfig configures the ERP REST API client.
type APIConfig struct {
	// BaseURL is the backend root, e.g. "https://erp.example.com/api".
	BaseURL string        `env:"BASE_URL" envDefault:"http://localhost:5000/api"`
	Timeout time.Duration `env:"TIMEOUT"  envDefault:"10s"`

	// ModulePaths overrides listing paths per module, e.g. "salary-advances:/advances,users:/auth/users".
	ModulePaths map[string]string `env:"MODULE_PATHS" envKeyValSeparator:":"`

	// RecordsExpr is the JMESPath expression locating records in a response.
	RecordsExpr string `env:"RECORDS_EXPR" envDefault:"data || @"`

	// DashboardConcurrency bounds parallel backend calls on the analytics page.
	DashboardConcurrency int `env:"DASHBOARD_CONCURRENCY" envDefault:"4"`
}

// Sanitize applies guardrails to API client configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = 10 * time.Second
	}
	if strings.TrimSpace(a.RecordsExpr) == "" {
		a.RecordsExpr = "data || @"
	}
	if a.DashboardConcurrency < 1 {
		a.DashboardConcurrency = 1
	}
	if a.DashboardConcurrency > 16 {
		a.DashboardConcurrency = 16
	}
}
