package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/painel-dev/painelctl/internal/cli/auth"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := getSelectedEnvironment()
			if err != nil {
				return err
			}

			apiClient := newAPIClient(env, auth.NewKeyringStore(), commandLogger())

			// Server-side logout is best-effort; the local token is
			// deleted either way.
			if err := apiClient.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			fmt.Println("✓ Logged out")
			return nil
		},
	}
}
