package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd)
		},
	}
}

func runWhoami(cmd *cobra.Command) error {
	gate, err := newSessionGate()
	if err != nil {
		return err
	}

	state, err := gate.check(cmd.Context(), "/dashboard")
	if err != nil {
		return err
	}

	admin := state.Admin
	fmt.Printf("Admin: %s\n", admin.Name)
	fmt.Printf("Email: %s\n", admin.Email)
	if admin.Role != "" {
		fmt.Printf("Role:  %s\n", admin.Role)
	}
	if !admin.CreatedAt.IsZero() {
		fmt.Printf("Since: %s\n", admin.CreatedAt.Format("2006-01-02"))
	}

	return nil
}
