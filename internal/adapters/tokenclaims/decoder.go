// Package tokenclaims reads the claim set out of backend-issued bearer tokens.
//
// The decoder does NOT verify signatures. Tokens only ever arrive from the ERP
// backend over TLS, either in the login response or from our own httpOnly
// cookie, so decoding is a parsing step and must not be treated as an
// authentication check.
package tokenclaims

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
)

// ErrTokenDecode is wrapped by every decode failure: wrong segment count, bad
// base64, bad JSON or claims of the wrong type.
var ErrTokenDecode = errors.New("token decode failed")

// Decoder parses JWT payloads without verification. Only the payload segment is
// read; the header and signature may hold anything, including an unknown alg.
type Decoder struct {
	parser *jwt.Parser
}

// NewDecoder returns a Decoder. Padded base64 segments are tolerated.
func NewDecoder() *Decoder {
	return &Decoder{parser: jwt.NewParser(jwt.WithPaddingAllowed())}
}

// Decode returns the canonical claim set carried by raw.
func (d *Decoder) Decode(raw string) (domainauth.Claims, error) {
	var claims domainauth.Claims
	if err := d.parse(raw, &claims); err != nil {
		return domainauth.Claims{}, err
	}
	return claims, nil
}

// DecodeMap returns every claim in raw as a generic JSON object.
func (d *Decoder) DecodeMap(raw string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	if err := d.parse(raw, &claims); err != nil {
		return nil, err
	}
	return map[string]any(claims), nil
}

func (d *Decoder) parse(raw string, claims any) error {
	if raw == "" {
		return fmt.Errorf("%w: empty token", ErrTokenDecode)
	}
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return fmt.Errorf("%w: token has %d segments, want 3", ErrTokenDecode, len(parts))
	}
	payload, err := d.parser.DecodeSegment(parts[1])
	if err != nil {
		return fmt.Errorf("%w: payload is not base64url: %w", ErrTokenDecode, err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(payload), []byte("{")) {
		return fmt.Errorf("%w: payload is not a JSON object", ErrTokenDecode)
	}
	if err := json.Unmarshal(payload, claims); err != nil {
		return fmt.Errorf("%w: payload: %w", ErrTokenDecode, err)
	}
	return nil
}
