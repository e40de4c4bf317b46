// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults apply when the file is empty.
package branding

import (
	_ "embed"
	"strings"
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
	NPMScope    string `yaml:"npm_scope"`
	GoModule    string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "proseby",
			DisplayName: "Proseby",
			Description: "Bootstrap and health tooling for the Proseby monorepo",
			HomeDir:     ".proseby",
			EnvPrefix:   "PROSEBY",
			NPMScope:    "@proseby",
			GoModule:    "github.com/proseby/devkit",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "proseby").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Proseby").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".proseby").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "PROSEBY").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// NPMScope returns the npm scope used for workspace packages (e.g., "@proseby").
func NPMScope() string { load(); return defaults.NPMScope }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("COLOR") → "PROSEBY_COLOR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
