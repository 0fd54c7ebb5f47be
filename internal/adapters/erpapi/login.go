package erpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/ports"
)

// CodeVerificationRequired is the backend error code for accounts pending OTP verification.
const CodeVerificationRequired = "VERIFICATION_REQUIRED"

// errorCodeExpr finds the backend error code in either flat or nested error payloads.
const errorCodeExpr = "code || error.code"

// errorMessageExpr finds the backend error message in either flat or nested error payloads.
const errorMessageExpr = "message || error.message"

// Exchange posts the credentials to /auth/login.
//
// Classification:
//   - payload code VERIFICATION_REQUIRED, any status → verification_required
//   - other 4xx → invalid_credentials
//   - 5xx, unreadable success bodies, network errors and timeouts → backend_unreachable
func (c *Client) Exchange(ctx context.Context, in ports.LoginInput) (ports.LoginResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(in)
	if err != nil {
		return ports.LoginResponse{}, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/auth/login"), bytes.NewReader(body))
	if err != nil {
		return ports.LoginResponse{}, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "login request failed",
			"error", err, "duration", time.Since(start))
		return ports.LoginResponse{}, apperrors.MapTransportError(fmt.Errorf("login request: %w", err))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ports.LoginResponse{}, apperrors.MapTransportError(fmt.Errorf("read login response: %w", err))
	}

	if code, msg := backendError(payload); code == CodeVerificationRequired {
		return ports.LoginResponse{}, apperrors.VerificationRequired(msg)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return ports.LoginResponse{}, apperrors.BackendUnreachable(fmt.Errorf("login: backend returned %d", resp.StatusCode))
	case resp.StatusCode >= http.StatusBadRequest:
		return ports.LoginResponse{}, apperrors.InvalidCredentials()
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return ports.LoginResponse{}, apperrors.BackendUnreachable(fmt.Errorf("login: unexpected status %d", resp.StatusCode))
	}

	var out ports.LoginResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return ports.LoginResponse{}, apperrors.BackendUnreachable(fmt.Errorf("decode login response: %w", err))
	}
	if strings.TrimSpace(out.Token) == "" {
		return ports.LoginResponse{}, apperrors.BackendUnreachable(errors.New("login response carried no token"))
	}
	return out, nil
}

// backendError extracts the error code and message from a backend payload, if any.
func backendError(payload []byte) (string, string) {
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return "", ""
	}
	return searchString(errorCodeExpr, doc), searchString(errorMessageExpr, doc)
}

func searchString(expr string, doc any) string {
	v, err := jmespath.Search(expr, doc)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
