package erpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/oauth2"

	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/ports"
)

// ModulePath returns the listing path for module.
func (c *Client) ModulePath(module string) string {
	if p, ok := c.modulePaths[module]; ok {
		return p
	}
	return "/" + module
}

// List fetches the listing for module with the caller's bearer token.
func (c *Client) List(ctx context.Context, token, module string) ([]ports.Record, error) {
	doc, err := c.getJSON(ctx, token, c.ModulePath(module))
	if err != nil {
		return nil, err
	}
	return c.toRecords(doc)
}

// Get fetches one record of module by id with the caller's bearer token.
func (c *Client) Get(ctx context.Context, token, module, id string) (ports.Record, error) {
	if id == "" {
		return nil, apperrors.Validation("record id is required")
	}
	doc, err := c.getJSON(ctx, token, c.ModulePath(module)+"/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	v, err := jmespath.Search(c.recordsExpr, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluate records expression: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, apperrors.NotFoundf("%s %s not found", module, id)
	}
	return ports.Record(m), nil
}

// authorizedClient re-attaches the session bearer token to outbound calls.
func (c *Client) authorizedClient(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
}

func (c *Client) getJSON(ctx context.Context, token, path string) (any, error) {
	if token == "" {
		return nil, apperrors.InvalidAccessToken(errors.New("no bearer token"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.authorizedClient(ctx, token).Do(req)
	if err != nil {
		return nil, apperrors.MapTransportError(fmt.Errorf("GET %s: %w", path, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.MapTransportError(fmt.Errorf("read %s: %w", path, err))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apperrors.InvalidAccessToken(fmt.Errorf("GET %s: backend rejected token", path))
	case resp.StatusCode == http.StatusForbidden:
		return nil, apperrors.PermissionDenied(path)
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NotFoundf("%s not found", path)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, apperrors.BackendUnreachable(fmt.Errorf("GET %s: backend returned %d", path, resp.StatusCode))
	case resp.StatusCode >= http.StatusBadRequest:
		_, msg := backendError(body)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, apperrors.Validation(msg)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.BackendUnreachable(fmt.Errorf("decode %s: %w", path, err))
	}
	return doc, nil
}

// toRecords applies the records expression and normalises the result into a list.
func (c *Client) toRecords(doc any) ([]ports.Record, error) {
	v, err := jmespath.Search(c.recordsExpr, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluate records expression: %w", err)
	}
	if m, ok := v.(map[string]any); ok {
		// "data || @" falls through to the envelope when data is an empty list.
		if inner, isList := m["data"].([]any); isList {
			v = inner
		}
	}

	switch list := v.(type) {
	case nil:
		return []ports.Record{}, nil
	case []any:
		out := make([]ports.Record, 0, len(list))
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, ports.Record(m))
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("listing response is %T, not a list", v)
	}
}
