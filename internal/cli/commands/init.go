package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/painel-dev/painelctl/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <panel-url>",
		Short: "Register a Painel environment in painel.json",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	panelURL := strings.TrimRight(args[0], "/")
	if !strings.HasPrefix(panelURL, "http://") && !strings.HasPrefix(panelURL, "https://") {
		panelURL = "https://" + panelURL
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Println("Found existing painel.json")
	} else {
		cfg = &config.Config{
			Environments: []config.Environment{},
		}
		isNewConfig = true
	}

	// Check if environment already exists
	exists := false
	for _, env := range cfg.Environments {
		if env.URL == panelURL {
			exists = true
			break
		}
	}

	if exists {
		fmt.Printf("Environment with URL %s already exists in painel.json\n", panelURL)
	} else {
		alias := "production"
		if len(cfg.Environments) > 0 {
			alias = fmt.Sprintf("panel-%d", len(cfg.Environments)+1)
		}

		cfg.Environments = append(cfg.Environments, config.Environment{
			URL:   panelURL,
			Alias: alias,
		})

		if err := config.Save(configPath, cfg); err != nil {
			return err
		}

		if isNewConfig {
			fmt.Printf("✓ Created ./painel.json with environment %s (%s)\n", panelURL, alias)
		} else {
			fmt.Printf("✓ Added environment %s (%s) to ./painel.json\n", panelURL, alias)
		}
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'painelctl status' to verify the server is reachable")
	fmt.Println("  2. Run 'painelctl login' to authenticate")

	return nil
}
