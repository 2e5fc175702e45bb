package commands

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/painel-dev/painelctl/internal/cli/auth"
	"github.com/painel-dev/painelctl/internal/cli/client"
	"github.com/painel-dev/painelctl/internal/cli/config"
	"github.com/painel-dev/painelctl/internal/cli/envselect"
	"github.com/painel-dev/painelctl/internal/logger"
)

// getSelectedEnvironment loads the project config and resolves which panel
// environment to talk to. Common logic used by most commands.
func getSelectedEnvironment() (*config.Environment, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'painelctl init' to create a configuration file", err)
	}

	env, err := envselect.ResolveEnvironment(cfg, "")
	if err != nil {
		return nil, err
	}

	if env.URL == "" {
		return nil, fmt.Errorf("environment URL is empty. Please edit painel.json and add a valid panel URL")
	}

	return env, nil
}

// newAPIClient builds the API client for an environment. The base URL is
// resolved here, once, and the production keyring store is attached.
func newAPIClient(env *config.Environment, store auth.TokenStore, log zerolog.Logger) *client.Client {
	return client.New(
		config.ResolveAPIBaseURL(env.URL),
		client.WithTokenStore(store),
		client.WithLogger(log),
	)
}

// logNotifier routes guard warnings through the application logger.
type logNotifier struct {
	log zerolog.Logger
}

func (n logNotifier) Warn(message string) {
	n.log.Warn().Msg(message)
}

func commandLogger() zerolog.Logger {
	return logger.GetLogger()
}
