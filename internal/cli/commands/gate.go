package commands

import (
	"context"
	"fmt"

	"github.com/painel-dev/painelctl/internal/cli/auth"
	"github.com/painel-dev/painelctl/internal/cli/client"
	"github.com/painel-dev/painelctl/internal/cli/config"
	"github.com/painel-dev/painelctl/internal/cli/guard"
	"github.com/painel-dev/painelctl/internal/cli/session"
)

// loginPath is the panel route unauthenticated users are sent to. It is also
// what the guard compares the current path against to suppress the
// session-expired warning when the user is already there.
const loginPath = "/login"

// sessionGate bundles the client, session manager and route guard for
// commands that require an authenticated session.
type sessionGate struct {
	client  *client.Client
	manager *session.Manager
	guard   *guard.Guard
	env     *config.Environment
}

// newSessionGate resolves the selected environment and wires the session
// manager as the client's invalidation hook.
func newSessionGate() (*sessionGate, error) {
	env, err := getSelectedEnvironment()
	if err != nil {
		return nil, err
	}

	log := commandLogger()
	store := auth.NewKeyringStore()

	var manager *session.Manager
	apiClient := client.New(
		config.ResolveAPIBaseURL(env.URL),
		client.WithTokenStore(store),
		client.WithLogger(log),
		client.WithInvalidationHook(func(status int) {
			if manager != nil {
				manager.Invalidated(status)
			}
		}),
	)
	manager = session.NewManager(apiClient, store, log)

	return &sessionGate{
		client:  apiClient,
		manager: manager,
		guard:   guard.New(loginPath, logNotifier{log: log}),
		env:     env,
	}, nil
}

// check refreshes the session and evaluates the guard against the panel path
// the command corresponds to. On anything but a render decision it returns an
// error with login guidance.
func (g *sessionGate) check(ctx context.Context, path string) (session.State, error) {
	g.manager.Refresh(ctx)
	state := g.manager.Snapshot()

	result := g.guard.Evaluate(state, path)
	switch result.Decision {
	case guard.DecisionRender:
		return state, nil
	case guard.DecisionRedirect:
		if state.ServerError {
			return state, fmt.Errorf("could not verify your session with %s. Check the server and try again", g.env.Alias)
		}
		return state, fmt.Errorf("not authenticated. Please run 'painelctl login' first")
	default:
		return state, fmt.Errorf("session state is still loading")
	}
}
