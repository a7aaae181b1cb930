package routeguard

import (
	"github.com/agentforge/clientkit/pkg/adminsession"
	"github.com/agentforge/clientkit/pkg/authsession"
)

// State is the guard's access decision.
type State int

const (
	// StateLoading means session hydration has not resolved yet; render a
	// placeholder, not a redirect.
	StateLoading State = iota
	StateAuthorized
	StateUnauthorized
)

// Probe is the guard's view of the owning session: still hydrating,
// active, or cleared.
type Probe int

const (
	ProbePending Probe = iota
	ProbeGranted
	ProbeDenied
)

// Decision is the result of evaluating a guard against an attempted path.
type Decision struct {
	State State

	// RedirectTo is the domain's login route; set only when Unauthorized.
	RedirectTo string

	// ReturnTo preserves the attempted path so the login flow can return
	// to it; set only when Unauthorized.
	ReturnTo string
}

// Guard gates a route subtree on a session domain.
type Guard struct {
	probe     func() Probe
	loginPath string
}

// New creates a guard from a session probe and the domain's login route.
func New(probe func() Probe, loginPath string) *Guard {
	return &Guard{probe: probe, loginPath: loginPath}
}

// Evaluate computes the access decision for the attempted path. It is a
// pure snapshot: callers re-evaluate on session OnChange events to observe
// the Authorized to Unauthorized transition while mounted.
func (g *Guard) Evaluate(path string) Decision {
	switch g.probe() {
	case ProbePending:
		return Decision{State: StateLoading}
	case ProbeGranted:
		return Decision{State: StateAuthorized}
	default:
		return Decision{
			State:      StateUnauthorized,
			RedirectTo: g.loginPath,
			ReturnTo:   path,
		}
	}
}

// UserProbe adapts the user session manager to a guard probe.
func UserProbe(manager *authsession.Manager) func() Probe {
	return func() Probe {
		switch manager.Status() {
		case authsession.StatusLoading:
			return ProbePending
		case authsession.StatusAuthenticated:
			return ProbeGranted
		default:
			return ProbeDenied
		}
	}
}

// AdminProbe adapts the admin session controller to a guard probe.
func AdminProbe(controller *adminsession.Controller) func() Probe {
	return func() Probe {
		switch controller.Status() {
		case adminsession.StatusLoading:
			return ProbePending
		case adminsession.StatusAuthenticated:
			return ProbeGranted
		default:
			return ProbeDenied
		}
	}
}
