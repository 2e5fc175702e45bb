package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveAPIBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		panelURL string
		override string
		expected string
	}{
		{
			name:     "panel URL joined with default base path",
			panelURL: "https://painel.example.com",
			expected: "https://painel.example.com/Admin/api",
		},
		{
			name:     "trailing slash trimmed before joining",
			panelURL: "https://painel.example.com/",
			expected: "https://painel.example.com/Admin/api",
		},
		{
			name:     "empty panel URL falls back to local default",
			panelURL: "",
			expected: "http://localhost:8080/Admin/api",
		},
		{
			name:     "environment override wins over everything",
			panelURL: "https://painel.example.com",
			override: "http://localhost:9999/custom/api",
			expected: "http://localhost:9999/custom/api",
		},
		{
			name:     "override trailing slash trimmed",
			panelURL: "",
			override: "http://localhost:9999/custom/api/",
			expected: "http://localhost:9999/custom/api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.override != "" {
				t.Setenv(APIURLEnvVar, tt.override)
			} else {
				t.Setenv(APIURLEnvVar, "")
			}

			if got := ResolveAPIBaseURL(tt.panelURL); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFindConfigFile_WalksParents(t *testing.T) {
	tempDir := t.TempDir()

	cfgPath := filepath.Join(tempDir, ConfigFileName)
	if err := Save(cfgPath, &Config{Environments: []Environment{{URL: "https://painel.example.com", Alias: "production"}}}); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	nested := filepath.Join(tempDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	defer os.Chdir(originalDir)

	found, err := FindConfigFile()
	if err != nil {
		t.Fatalf("expected config to be found, got error: %v", err)
	}
	// Compare via EvalSymlinks: t.TempDir may sit behind a symlink on macOS.
	wantResolved, _ := filepath.EvalSymlinks(cfgPath)
	gotResolved, _ := filepath.EvalSymlinks(found)
	if gotResolved != wantResolved {
		t.Errorf("expected %s, got %s", wantResolved, gotResolved)
	}
}

func TestLoadAndSaveRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	cfgPath := filepath.Join(tempDir, ConfigFileName)

	original := &Config{
		Environments: []Environment{
			{URL: "https://painel.example.com", Alias: "production"},
			{URL: "https://staging.painel.example.com", Alias: "staging"},
		},
	}
	if err := Save(cfgPath, original); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(loaded.Environments) != 2 {
		t.Fatalf("expected 2 environments, got %d", len(loaded.Environments))
	}

	env, err := loaded.GetEnvironmentByAlias("staging")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.URL != "https://staging.painel.example.com" {
		t.Errorf("unexpected URL: %s", env.URL)
	}

	if _, err := loaded.GetEnvironmentByAlias("missing"); err == nil {
		t.Error("expected error for unknown alias")
	}
}
