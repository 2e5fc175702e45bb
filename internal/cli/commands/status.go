package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/painel-dev/painelctl/internal/cli/auth"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the Painel server is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := getSelectedEnvironment()
			if err != nil {
				return err
			}

			apiClient := newAPIClient(env, auth.NewKeyringStore(), commandLogger())

			if !apiClient.CheckServerHealth(cmd.Context()) {
				return fmt.Errorf("✗ %s (%s) is not reachable", env.Alias, env.URL)
			}

			fmt.Printf("✓ %s (%s) is online\n", env.Alias, env.URL)
			return nil
		},
	}
}
