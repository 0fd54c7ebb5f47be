// Package access decides whether a request may reach a page, given the
// request's session state. It is pure: no I/O beyond an optional logger.
package access

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
)

// Outcome is the gate's verdict.
type Outcome int

const (
	Allow Outcome = iota
	RedirectLogin
	RedirectForbidden
)

func (o Outcome) String() string {
	switch o {
	case RedirectLogin:
		return "redirect_login"
	case RedirectForbidden:
		return "redirect_forbidden"
	default:
		return "allow"
	}
}

// Decision reasons, recorded for logs and metrics.
const (
	ReasonUnauthenticated    = "unauthenticated"
	ReasonSessionErrored     = "session_errored"
	ReasonBypass             = "bypass"
	ReasonPermitted          = "permitted"
	ReasonNotPermitted       = "not_permitted"
	ReasonConsultantDenylist = "consultant_denylist"
	ReasonNoPermissionMap    = "no_permission_map"
	ReasonEvaluationError    = "evaluation_error"
)

// Request is the part of an HTTP request the gate looks at. Path may be escaped.
type Request struct {
	Path  string
	Query url.Values
}

// Decision is the result of Decide.
type Decision struct {
	Outcome Outcome
	Reason  string
	// Path is the normalized path the decision was made for.
	Path string
	// MatchedKey is the permission map key that resolved the path, if any.
	MatchedKey string
	// ForceSignOut is set when the session token must be discarded.
	ForceSignOut bool
	// Degraded marks a best-effort decision taken after an evaluation error.
	Degraded bool
}

// BypassRule allows a path unconditionally when every query parameter in Query
// carries a non-empty value.
type BypassRule struct {
	Path  string
	Query []string
}

// Config holds the gate's fixed rules.
type Config struct {
	// ConsultantDenylist lists admin-module roots closed to consultant-only accounts.
	ConsultantDenylist []string
	Bypass             []BypassRule
}

// DefaultConfig returns the production rule set.
func DefaultConfig() Config {
	return Config{
		ConsultantDenylist: []string{"/contracts", "/claims", "/imprest", "/users", "/budget"},
		Bypass: []BypassRule{
			{Path: "/users", Query: []string{"pick", "returnTo"}},
		},
	}
}

// Gate evaluates requests against the session state.
type Gate struct {
	denylist []string
	bypass   []BypassRule
	logger   *slog.Logger
}

// NewGate builds a Gate. A nil logger uses slog.Default().
func NewGate(cfg Config, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gate{logger: logger}
	for _, root := range cfg.ConsultantDenylist {
		if root = cleanRoot(root); root != "" {
			g.denylist = append(g.denylist, strings.ToLower(root))
		}
	}
	for _, rule := range cfg.Bypass {
		if p := cleanRoot(rule.Path); p != "" {
			g.bypass = append(g.bypass, BypassRule{Path: p, Query: append([]string(nil), rule.Query...)})
		}
	}
	return g
}

var errNotAbsolute = errors.New("path is not absolute")

// Decide runs the gate.
//
// Order: not Active → login; bypass rule → allow; non-empty permission map →
// longest-prefix match with a non-empty action list; no map → consultant-only
// accounts are kept out of the denylist roots. If evaluation fails, the decision
// degrades to the consultant denylist alone and otherwise allows.
func (g *Gate) Decide(req Request, state domainauth.State) Decision {
	switch state.Kind() {
	case domainauth.StateErrored:
		return Decision{Outcome: RedirectLogin, Reason: ReasonSessionErrored, ForceSignOut: true}
	case domainauth.StateUnauthenticated:
		return Decision{Outcome: RedirectLogin, Reason: ReasonUnauthenticated}
	}
	sess, ok := state.Session()
	if !ok {
		return Decision{Outcome: RedirectLogin, Reason: ReasonUnauthenticated}
	}

	d, err := g.evaluate(req, sess)
	if err == nil {
		return d
	}

	g.logger.Warn("access gate evaluation failed, using best-effort decision",
		"path", req.Path, "error", err)
	return g.bestEffort(req.Path, sess)
}

func (g *Gate) evaluate(req Request, sess *domainauth.Session) (d Decision, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during evaluation: %v", r)
		}
	}()

	p, err := normalizePath(req.Path)
	if err != nil {
		return Decision{}, err
	}

	if g.bypassed(p, req.Query) {
		return Decision{Outcome: Allow, Reason: ReasonBypass, Path: p}, nil
	}

	onlyConsultant := sess.Roles.IsOnlyConsultant()

	if !sess.Permissions.Empty() {
		match, found := sess.Permissions.Resolve(p)
		if found && len(match.Actions) > 0 {
			return Decision{Outcome: Allow, Reason: ReasonPermitted, Path: p, MatchedKey: match.Key}, nil
		}
		reason := ReasonNotPermitted
		if onlyConsultant && g.denylisted(p) {
			reason = ReasonConsultantDenylist
		}
		return Decision{Outcome: RedirectForbidden, Reason: reason, Path: p, MatchedKey: match.Key}, nil
	}

	if onlyConsultant && g.denylisted(p) {
		return Decision{Outcome: RedirectForbidden, Reason: ReasonConsultantDenylist, Path: p}, nil
	}
	return Decision{Outcome: Allow, Reason: ReasonNoPermissionMap, Path: p}, nil
}

// bestEffort is the fallback after an evaluation error. If the denylist check
// itself fails the request is allowed.
func (g *Gate) bestEffort(raw string, sess *domainauth.Session) (d Decision) {
	d = Decision{Outcome: Allow, Reason: ReasonEvaluationError, Path: raw, Degraded: true}
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("access gate denylist fallback failed", "path", raw, "panic", r)
			d = Decision{Outcome: Allow, Reason: ReasonEvaluationError, Path: raw, Degraded: true}
		}
	}()
	if sess.Roles.IsOnlyConsultant() && g.denylisted(raw) {
		d.Outcome = RedirectForbidden
	}
	return d
}

// Permits reports whether sess would be let through to p.
func (g *Gate) Permits(sess domainauth.Session, p string) bool {
	return g.Decide(Request{Path: p}, domainauth.Active(sess)).Outcome == Allow
}

func (g *Gate) bypassed(p string, q url.Values) bool {
	for _, rule := range g.bypass {
		if p != rule.Path {
			continue
		}
		all := true
		for _, k := range rule.Query {
			if q.Get(k) == "" {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func (g *Gate) denylisted(p string) bool {
	p = strings.ToLower(p)
	for _, root := range g.denylist {
		if p == root || strings.HasPrefix(p, root+"/") {
			return true
		}
	}
	return false
}

// normalizePath unescapes and cleans a request path so encoded or dotted
// variants resolve to the same keys.
func normalizePath(raw string) (string, error) {
	if raw == "" {
		return "/", nil
	}
	unescaped, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("unescape %q: %w", raw, err)
	}
	if !strings.HasPrefix(unescaped, "/") {
		return "", fmt.Errorf("%q: %w", raw, errNotAbsolute)
	}
	return path.Clean(unescaped), nil
}

func cleanRoot(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
