// Package branding provides compile-time identity values for the workflow
// binary. The values live in branding.yaml next to this file and are baked
// into the binary with //go:embed.
package branding

import (
	_ "embed"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GitHubRepo  string `yaml:"github_repo"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "alfred-pinboard",
			DisplayName: "Alfred Pinboard",
			Description: "Pinboard bookmarks from the Alfred launcher",
			HomeDir:     ".alfred-pinboard",
			EnvPrefix:   "ALFRED_PINBOARD",
			GitHubRepo:  "pinmark/alfred-pinboard",
		}
		// Embedded values win over the hard defaults.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the binary name (e.g., "alfred-pinboard").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable workflow name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short workflow description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the fallback dot-directory under $HOME used when the
// workflow runs outside Alfred.
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "ALFRED_PINBOARD").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string releases are published under.
func GitHubRepo() string { load(); return defaults.GitHubRepo }
