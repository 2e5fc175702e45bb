package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const ConfigFileName = "painel.json"

// DefaultBasePath is the path the Painel backend mounts its API under.
const DefaultBasePath = "/Admin/api"

// defaultPanelURL is used when nothing is configured at all (local dev).
const defaultPanelURL = "http://localhost:8080"

// APIURLEnvVar overrides the resolved API base URL entirely when set.
const APIURLEnvVar = "PAINEL_API_URL"

// Environment represents a named Painel panel deployment.
type Environment struct {
	URL   string `json:"url"`
	Alias string `json:"alias"`
}

// Config represents the project configuration file (painel.json).
type Config struct {
	Environments []Environment `json:"environments"`
}

// DefaultConfig returns a configuration with a single placeholder environment.
func DefaultConfig() *Config {
	return &Config{
		Environments: []Environment{
			{
				URL:   "",
				Alias: "e.g. production panel",
			},
		},
	}
}

// ResolveAPIBaseURL resolves the API base URL for one environment, exactly
// once at client construction. PAINEL_API_URL wins over everything; otherwise
// the panel URL is joined with the fixed default base path; with no
// configuration at all the local development default applies.
func ResolveAPIBaseURL(panelURL string) string {
	if override := os.Getenv(APIURLEnvVar); override != "" {
		return strings.TrimRight(override, "/")
	}

	if panelURL == "" {
		panelURL = defaultPanelURL
	}

	return strings.TrimRight(panelURL, "/") + DefaultBasePath
}

// FindConfigFile searches for painel.json in the current directory and its
// parents.
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("painel.json not found in %s or any parent directory", currentDir)
}

// Load reads the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads config from the current directory or any parent.
func LoadFromCurrentDir() (*Config, error) {
	configPath, err := FindConfigFile()
	if err != nil {
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetEnvironmentByAlias returns an environment by its alias.
func (c *Config) GetEnvironmentByAlias(alias string) (*Environment, error) {
	for _, env := range c.Environments {
		if env.Alias == alias {
			return &env, nil
		}
	}
	return nil, fmt.Errorf("environment with alias '%s' not found", alias)
}

// GetDefaultEnvironment returns the first environment in the list.
func (c *Config) GetDefaultEnvironment() (*Environment, error) {
	if len(c.Environments) == 0 {
		return nil, fmt.Errorf("no environments configured in painel.json")
	}
	return &c.Environments[0], nil
}
