package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewProfileCmd creates the profile command
func NewProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <id>",
		Short: "Show an access profile by its numeric id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid profile id '%s': must be a number", args[0])
			}
			return runProfile(cmd, id)
		},
	}
}

func runProfile(cmd *cobra.Command, id int64) error {
	gate, err := newSessionGate()
	if err != nil {
		return err
	}

	if _, err := gate.check(cmd.Context(), fmt.Sprintf("/profiles/%d", id)); err != nil {
		return err
	}

	profile, err := gate.client.GetProfile(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	fmt.Printf("Profile #%d: %s\n", profile.ID, profile.Name)
	if profile.Description != "" {
		fmt.Printf("  %s\n", profile.Description)
	}
	if len(profile.Permissions) > 0 {
		fmt.Printf("  Permissions: %s\n", strings.Join(profile.Permissions, ", "))
	}

	return nil
}
