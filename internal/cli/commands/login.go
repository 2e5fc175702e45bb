package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/painel-dev/painelctl/internal/cli/auth"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, senha string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Painel admin panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, email, senha)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set PAINEL_EMAIL)")
	cmd.Flags().StringVar(&senha, "password", "", "Password (or set PAINEL_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(cmd *cobra.Command, email, senha string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("PAINEL_EMAIL")
	}
	if senha == "" {
		senha = os.Getenv("PAINEL_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or PAINEL_EMAIL env var)")
	}

	env, err := getSelectedEnvironment()
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
	if senha == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			byteSenha, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			senha = string(byteSenha)
			fmt.Println() // New line after password input
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or PAINEL_PASSWORD env var)")
		}
	}

	store := auth.NewKeyringStore()
	apiClient := newAPIClient(env, store, commandLogger())

	fmt.Printf("Logging in to %s (%s)...\n", env.Alias, env.URL)

	loginResp, err := apiClient.Login(cmd.Context(), email, senha)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := store.SaveToken(loginResp.Token); err != nil {
		return fmt.Errorf("failed to save authentication token: %w", err)
	}

	fmt.Println("✓ Login successful!")
	fmt.Printf("  Admin: %s (%s)\n", loginResp.Admin.Name, loginResp.Admin.Email)
	if loginResp.Admin.Role != "" {
		fmt.Printf("  Role: %s\n", loginResp.Admin.Role)
	}

	return nil
}
