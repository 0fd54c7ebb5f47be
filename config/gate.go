package config

import (
	"fmt"
	"strings"
)

// BypassRule lets a path through the gate when all Query parameters are present.
type BypassRule struct {
	Path  string
	Query []string
}

// BypassRules parses "path?param&param;path?param" lists.
type BypassRules []BypassRule

// UnmarshalText implements encoding.TextUnmarshaler for BypassRules.
func (b *BypassRules) UnmarshalText(text []byte) error {
	var out BypassRules
	for _, raw := range strings.Split(string(text), ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		p, query, _ := strings.Cut(raw, "?")
		p = strings.TrimSpace(p)
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("invalid bypass rule %q: path must start with /", raw)
		}
		rule := BypassRule{Path: p}
		for _, k := range strings.Split(query, "&") {
			if k = strings.TrimSpace(k); k != "" {
				rule.Query = append(rule.Query, k)
			}
		}
		if len(rule.Query) == 0 {
			return fmt.Errorf("invalid bypass rule %q: at least one query parameter is required", raw)
		}
		out = append(out, rule)
	}
	*b = out
	return nil
}

// GateConfig holds the permission gate's fixed rules.
type GateConfig struct {
	// ForbiddenPath is where denied browser requests are sent.
	ForbiddenPath string `env:"GATE_FORBIDDEN_PATH" envDefault:"/unauthorized"`

	// ConsultantDenylist lists admin roots closed to consultant-only accounts
	// without a permission map.
	ConsultantDenylist []string `env:"GATE_CONSULTANT_DENYLIST" envDefault:"/contracts,/claims,/imprest,/users,/budget"`

	// Bypass opens a path regardless of permissions when its query parameters are set.
	Bypass BypassRules `env:"GATE_BYPASS" envDefault:"/users?pick&returnTo"`
}

// Sanitize applies guardrails to gate configuration values.
func (g *GateConfig) Sanitize() {
	g.ForbiddenPath = strings.TrimSpace(g.ForbiddenPath)
	if !strings.HasPrefix(g.ForbiddenPath, "/") || strings.HasPrefix(g.ForbiddenPath, "//") {
		g.ForbiddenPath = "/unauthorized"
	}
	roots := g.ConsultantDenylist[:0]
	for _, r := range g.ConsultantDenylist {
		if r = strings.TrimSpace(r); r != "" {
			roots = append(roots, r)
		}
	}
	g.ConsultantDenylist = roots
}
