// Package guard implements the route-guard state machine: given the session
// flags and the current path, it decides between showing a loading state,
// redirecting to the login route, or rendering the guarded content.
package guard

import "github.com/painel-dev/painelctl/internal/cli/session"

// SessionExpiredMessage is the warning emitted once per transition into the
// unauthenticated state.
const SessionExpiredMessage = "Session expired. Please log in again."

// Decision is the guard's verdict for one evaluation.
type Decision int

const (
	// DecisionLoading means session state is still being resolved; show a
	// loading indicator, do not redirect.
	DecisionLoading Decision = iota
	// DecisionRedirect means the caller must navigate to Result.Target.
	DecisionRedirect
	// DecisionRender means the guarded content may be shown.
	DecisionRender
)

// Result carries the decision and, for redirects, the target path.
type Result struct {
	Decision Decision
	Target   string
}

// Notifier receives the one-shot session-expired warning.
type Notifier interface {
	Warn(message string)
}

// Guard evaluates session state against the login route. It keeps one bit of
// history so the session-expired warning fires on the transition into the
// unauthenticated state, not on every evaluation.
type Guard struct {
	loginPath string
	notifier  Notifier
	notified  bool
}

// New creates a guard redirecting to loginPath. The notifier may be nil.
func New(loginPath string, notifier Notifier) *Guard {
	return &Guard{
		loginPath: loginPath,
		notifier:  notifier,
	}
}

// Evaluate maps the session state and current path to a rendering decision.
//
// Loading wins over everything and never redirects. A server error redirects
// to the login route silently (that route is responsible for displaying it).
// Unauthenticated redirects to the login route and, if this is the first
// evaluation since the session became unauthenticated and the user is not
// already on the login route, emits the session-expired warning. Leaving the
// unauthenticated state re-arms the warning.
func (g *Guard) Evaluate(s session.State, path string) Result {
	if s.Loading {
		g.notified = false
		return Result{Decision: DecisionLoading}
	}

	if s.ServerError {
		g.notified = false
		return Result{Decision: DecisionRedirect, Target: g.loginPath}
	}

	if !s.Authenticated {
		if !g.notified {
			g.notified = true
			if path != g.loginPath && g.notifier != nil {
				g.notifier.Warn(SessionExpiredMessage)
			}
		}
		return Result{Decision: DecisionRedirect, Target: g.loginPath}
	}

	g.notified = false
	return Result{Decision: DecisionRender}
}
