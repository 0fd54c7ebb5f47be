package auth

// StateKind enumerates the shapes a request's session can take.
type StateKind int

const (
	StateUnauthenticated StateKind = iota
	StateErrored
	StateActive
)

func (k StateKind) String() string {
	switch k {
	case StateErrored:
		return "errored"
	case StateActive:
		return "active"
	default:
		return "unauthenticated"
	}
}

// ReasonInvalidAccessToken marks a session whose token could not be decoded.
const ReasonInvalidAccessToken = "InvalidAccessToken"

// State is the session as seen by a single request: Unauthenticated, Errored(reason)
// or Active(session). Only Active carries a session, so callers cannot read claims
// off an errored or anonymous request by accident.
type State struct {
	kind    StateKind
	reason  string
	session *Session
}

// Unauthenticated returns the state for requests with no usable token.
func Unauthenticated() State { return State{kind: StateUnauthenticated} }

// Errored returns the state for requests whose token is present but unusable.
func Errored(reason string) State { return State{kind: StateErrored, reason: reason} }

// Active returns the state for a fully hydrated session.
func Active(s Session) State { return State{kind: StateActive, session: &s} }

// Kind returns the variant tag.
func (s State) Kind() StateKind { return s.kind }

// Reason returns the error reason for Errored states and "" otherwise.
func (s State) Reason() string { return s.reason }

// Session returns the hydrated session and true only for Active states.
func (s State) Session() (*Session, bool) {
	if s.kind != StateActive || s.session == nil {
		return nil, false
	}
	return s.session, true
}

// IsActive reports whether the state carries a session.
func (s State) IsActive() bool { return s.kind == StateActive && s.session != nil }
