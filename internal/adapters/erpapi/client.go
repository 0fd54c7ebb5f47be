package erpapi

// Package erpapi is the HTTP adapter for the ERP backend REST API: the credential
// exchange used at login and the read endpoints behind the module pages.

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
)

const (
	// DefaultTimeout bounds every backend call unless Config.Timeout says otherwise.
	DefaultTimeout = 10 * time.Second
	// DefaultRecordsExpr locates the record list in a listing response.
	DefaultRecordsExpr = "data || @"

	maxResponseBytes = 4 << 20
)

// Config holds configuration for the ERP API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// ModulePaths overrides the listing path per module key (default "/<module>").
	ModulePaths map[string]string
	// RecordsExpr is a JMESPath expression applied to listing and detail responses.
	RecordsExpr string
	HTTPClient  *http.Client // Optional, defaults to a client with Timeout
	Logger      *slog.Logger
}

// Client talks to the ERP backend.
type Client struct {
	baseURL     *url.URL
	timeout     time.Duration
	modulePaths map[string]string
	recordsExpr string
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("erpapi: base URL is required")
	}
	base, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("erpapi: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("erpapi: base URL must use http or https, got %q", base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	expr := strings.TrimSpace(cfg.RecordsExpr)
	if expr == "" {
		expr = DefaultRecordsExpr
	}
	if _, compileErr := jmespath.Compile(expr); compileErr != nil {
		return nil, fmt.Errorf("erpapi: records expression %q: %w", expr, compileErr)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	paths := make(map[string]string, len(cfg.ModulePaths))
	for k, v := range cfg.ModulePaths {
		paths[k] = "/" + strings.Trim(v, "/")
	}

	return &Client{
		baseURL:     base,
		timeout:     timeout,
		modulePaths: paths,
		recordsExpr: expr,
		httpClient:  hc,
		logger:      logger.With("component", "erpapi"),
	}, nil
}

// endpoint joins the already-escaped path p onto the base URL.
func (c *Client) endpoint(p string) string {
	return strings.TrimSuffix(c.baseURL.String(), "/") + "/" + strings.TrimPrefix(p, "/")
}
