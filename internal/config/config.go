package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	AccessToken string `json:"access_token"`
	SlackToken  string `json:"slack_token"`
	Language    string `json:"language"`
	PathFile    string `json:"path_file"`

	DefaultOrg       string   `json:"default_org,omitempty"`
	DefaultTeamSlugs []string `json:"default_team_slugs,omitempty"`
	TOTPSecret       string   `json:"totp_secret,omitempty"`

	RepoPrivateDefault bool `json:"repo_private_default"`

	// Team permission levels accepted by "gh org team add". Anything
	// outside this list is rejected before the API call.
	OrgTeamAddAllowedPerms []string `json:"org_team_add_allowed_perms"`

	// Per-command switches keyed by command name, e.g. "repo_delete".
	// Commands missing from the map fall back to the built-in defaults.
	Features map[string]bool `json:"features"`
}

const (
	defaultLang           = "en"
	defaultPrivateDefault = true
)

// Destructive or org-mutating commands ship disabled and have to be
// switched on explicitly.
var defaultFeatures = map[string]bool{
	"repo_create":             true,
	"repo_delete":             false,
	"repo_rename":             false,
	"repo_team_add":           false,
	"repo_team_rm":            false,
	"repo_update_description": true,
	"repo_update_homepage":    true,
	"pr_merge":                true,
	"org_team_add":            false,
	"org_team_rm":             false,
	"org_user_add":            false,
	"org_user_rm":             false,
	"org_eject":               false,
}

var validPerms = map[string]bool{"pull": true, "push": true, "admin": true}

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".lita-github")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create the config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read the config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to decode the config file: %w", err)
	}

	// Tokens left out of the file can still come from the environment.
	if config.AccessToken == "" {
		config.AccessToken = os.Getenv("GITHUB_ACCESS_TOKEN")
	}
	if config.SlackToken == "" {
		config.SlackToken = os.Getenv("SLACK_TOKEN")
	}

	applyDefaults(&config)
	config.PathFile = configPath

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded config is not valid: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		Language:           defaultLang,
		PathFile:           path,
		RepoPrivateDefault: defaultPrivateDefault,
	}
	applyDefaults(config)

	if token := os.Getenv("GITHUB_ACCESS_TOKEN"); token != "" {
		config.AccessToken = token
	}
	if token := os.Getenv("SLACK_TOKEN"); token != "" {
		config.SlackToken = token
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create the config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode the default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save the default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode the config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("failed to save the config: %w", err)
	}

	return nil
}

// FeatureEnabled reports whether a command has been switched on, falling
// back to the built-in default for commands the config does not mention.
func (c *Config) FeatureEnabled(name string) bool {
	if c.Features != nil {
		if enabled, ok := c.Features[name]; ok {
			return enabled
		}
	}
	return defaultFeatures[name]
}

// PermAllowed reports whether a team permission level is on the
// org_team_add allow list.
func (c *Config) PermAllowed(perm string) bool {
	for _, p := range c.OrgTeamAddAllowedPerms {
		if p == perm {
			return true
		}
	}
	return false
}

func applyDefaults(config *Config) {
	if config.Language == "" {
		config.Language = defaultLang
	}
	if config.OrgTeamAddAllowedPerms == nil {
		config.OrgTeamAddAllowedPerms = []string{"pull"}
	}
	if config.Features == nil {
		config.Features = map[string]bool{}
	}
	for name, enabled := range defaultFeatures {
		if _, ok := config.Features[name]; !ok {
			config.Features[name] = enabled
		}
	}
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return errors.New("language must not be empty")
	}
	for _, perm := range config.OrgTeamAddAllowedPerms {
		if !validPerms[perm] {
			return fmt.Errorf("unsupported team permission in allow list: %s", perm)
		}
	}
	for name := range config.Features {
		if _, ok := defaultFeatures[name]; !ok {
			return fmt.Errorf("unknown feature flag: %s", name)
		}
	}
	return nil
}
