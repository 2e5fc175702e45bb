package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/painel-dev/painelctl/internal/cli/config"
)

// setupTestEnvironment creates a temporary directory with a painel.json and
// chdirs into it. HOME is redirected so the user config never touches the
// real one.
func setupTestEnvironment(t *testing.T, environments []config.Environment) string {
	t.Helper()

	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)

	cfg := config.Config{Environments: environments}
	cfgData, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}

	cfgPath := filepath.Join(tempDir, config.ConfigFileName)
	if err := os.WriteFile(cfgPath, cfgData, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(originalDir) })

	return tempDir
}

func TestLoginCommand_Structure(t *testing.T) {
	cmd := NewLoginCmd()

	if cmd.Use != "login" {
		t.Errorf("expected Use to be 'login', got %s", cmd.Use)
	}

	if cmd.Flags().Lookup("email") == nil {
		t.Error("expected --email flag to exist")
	}
	if cmd.Flags().Lookup("password") == nil {
		t.Error("expected --password flag to exist")
	}
}

func TestLoginCommand_MissingEmail(t *testing.T) {
	setupTestEnvironment(t, []config.Environment{
		{Alias: "test-panel", URL: "http://127.0.0.1:1"},
	})

	t.Setenv("PAINEL_EMAIL", "")
	t.Setenv("PAINEL_PASSWORD", "")

	err := runLogin(NewLoginCmd(), "", "secret")
	if err == nil {
		t.Fatal("expected error when email is missing, got nil")
	}

	expectedError := "email is required (use --email flag or PAINEL_EMAIL env var)"
	if err.Error() != expectedError {
		t.Errorf("expected error '%s', got '%s'", expectedError, err.Error())
	}
}

func TestLoginCommand_NoConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)

	originalDir, _ := os.Getwd()
	os.Chdir(tempDir)
	defer os.Chdir(originalDir)

	err := runLogin(NewLoginCmd(), "admin@painel.local", "secret")
	if err == nil {
		t.Fatal("expected error when config file is missing, got nil")
	}

	if !strings.HasPrefix(err.Error(), "failed to load config:") {
		t.Errorf("expected error to start with 'failed to load config:', got '%s'", err.Error())
	}
}

func TestLoginCommand_EmptyEnvironmentURL(t *testing.T) {
	setupTestEnvironment(t, []config.Environment{
		{Alias: "test-panel", URL: ""},
	})

	err := runLogin(NewLoginCmd(), "admin@painel.local", "secret")
	if err == nil {
		t.Fatal("expected error when environment URL is empty, got nil")
	}

	expectedError := "environment URL is empty. Please edit painel.json and add a valid panel URL"
	if err.Error() != expectedError {
		t.Errorf("expected error '%s', got '%s'", expectedError, err.Error())
	}
}
