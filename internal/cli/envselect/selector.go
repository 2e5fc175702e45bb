package envselect

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/painel-dev/painelctl/internal/cli/config"
	"github.com/painel-dev/painelctl/internal/cli/userconfig"
)

// ResolveEnvironment determines which panel environment to use:
// 1. If an alias is provided, use that environment
// 2. If the user has a selected environment in their local config, use that
// 3. If only one environment exists in the project config, use that
// 4. Otherwise, prompt interactively
func ResolveEnvironment(projectConfig *config.Config, alias string) (*config.Environment, error) {
	// Priority 1: explicit alias
	if alias != "" {
		env, err := projectConfig.GetEnvironmentByAlias(alias)
		if err != nil {
			return nil, err
		}
		return env, nil
	}

	// Priority 2: selected environment from user config
	selectedURL, err := userconfig.GetSelectedEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if selectedURL != "" {
		env, err := getEnvironmentByURL(projectConfig, selectedURL)
		if err != nil {
			// Selected environment no longer exists in project config,
			// clear it and continue
			_ = userconfig.SetSelectedEnvironment("")
		} else {
			return env, nil
		}
	}

	// Priority 3: single environment configured
	if len(projectConfig.Environments) == 1 {
		env := &projectConfig.Environments[0]
		if err := userconfig.SetSelectedEnvironment(env.URL); err != nil {
			fmt.Printf("Warning: failed to save selected environment: %v\n", err)
		}
		return env, nil
	}

	// Priority 4: interactive prompt
	env, err := PromptEnvironmentSelection(projectConfig)
	if err != nil {
		return nil, err
	}

	if err := userconfig.SetSelectedEnvironment(env.URL); err != nil {
		fmt.Printf("Warning: failed to save selected environment: %v\n", err)
	}

	return env, nil
}

// PromptEnvironmentSelection shows an interactive prompt for the user to pick
// a panel environment.
func PromptEnvironmentSelection(projectConfig *config.Config) (*config.Environment, error) {
	if len(projectConfig.Environments) == 0 {
		return nil, fmt.Errorf("no environments configured in painel.json")
	}

	type envOption struct {
		Label       string
		Environment *config.Environment
	}

	options := make([]envOption, len(projectConfig.Environments))
	for i := range projectConfig.Environments {
		env := &projectConfig.Environments[i]
		options[i] = envOption{
			Label:       fmt.Sprintf("%s (%s)", env.Alias, env.URL),
			Environment: env,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select an environment",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("environment selection cancelled: %w", err)
	}

	return options[index].Environment, nil
}

// GetEnvironmentByURLOrAlias finds an environment by URL or alias.
func GetEnvironmentByURLOrAlias(cfg *config.Config, urlOrAlias string) (*config.Environment, error) {
	for i := range cfg.Environments {
		if cfg.Environments[i].URL == urlOrAlias {
			return &cfg.Environments[i], nil
		}
	}

	for i := range cfg.Environments {
		if cfg.Environments[i].Alias == urlOrAlias {
			return &cfg.Environments[i], nil
		}
	}

	return nil, fmt.Errorf("environment with URL or alias '%s' not found", urlOrAlias)
}

func getEnvironmentByURL(cfg *config.Config, url string) (*config.Environment, error) {
	for i := range cfg.Environments {
		if cfg.Environments[i].URL == url {
			return &cfg.Environments[i], nil
		}
	}
	return nil, fmt.Errorf("environment with URL '%s' not found in project config", url)
}
