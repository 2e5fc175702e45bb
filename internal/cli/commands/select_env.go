package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/painel-dev/painelctl/internal/cli/config"
	"github.com/painel-dev/painelctl/internal/cli/envselect"
	"github.com/painel-dev/painelctl/internal/cli/userconfig"
)

// NewSelectEnvCmd creates the select-env command
func NewSelectEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select-env [url-or-alias]",
		Short: "Select the environment to use for commands",
		Long: `Select the environment to use for commands.

If no param is provided, an interactive prompt will be shown.

Examples:
  $ painelctl select-env                             # Interactive selection
  $ painelctl select-env https://painel.example.com  # Select by URL
  $ painelctl select-env production                  # Select by alias`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var urlOrAlias string
			if len(args) > 0 {
				urlOrAlias = args[0]
			}
			return runSelectEnv(urlOrAlias)
		},
	}
}

func runSelectEnv(urlOrAlias string) error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'painelctl init' to create a configuration file", err)
	}

	var env *config.Environment

	if urlOrAlias != "" {
		env, err = envselect.GetEnvironmentByURLOrAlias(cfg, urlOrAlias)
		if err != nil {
			return err
		}
	} else {
		env, err = envselect.PromptEnvironmentSelection(cfg)
		if err != nil {
			return err
		}
	}

	if err := userconfig.SetSelectedEnvironment(env.URL); err != nil {
		return fmt.Errorf("failed to save selected environment: %w", err)
	}

	fmt.Printf("Selected environment: %s (%s)\n", env.Alias, env.URL)
	return nil
}
