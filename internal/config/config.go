package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pinmark/alfred-pinboard/internal/branding"
	"github.com/spf13/viper"
)

// Keys understood by Get. Unprefixed keys are the variables Alfred sets for
// every workflow script.
const (
	KeyDataDir        = "data_dir"
	KeySettingsFormat = "settings_format"
	KeyLogLevel       = "log_level"
	KeyMirror         = "mirror"

	KeyWorkflowData  = "alfred_workflow_data"
	KeyAlfredVersion = "alfred_version"
	KeyAlfredDebug   = "alfred_debug"
)

const (
	settingsBase  = "settings"
	envFileName   = ".env"
	defaultFormat = "yaml"
	defaultLevel  = "info"
)

// Load wires Viper to the environment and overlays <data dir>/.env when it
// exists. Variables already present in the environment are never replaced.
func Load() {
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	for _, key := range []string{KeyWorkflowData, KeyAlfredVersion, KeyAlfredDebug} {
		_ = viper.BindEnv(key, key)
	}
	viper.SetDefault(KeySettingsFormat, defaultFormat)
	viper.SetDefault(KeyLogLevel, defaultLevel)

	// Missing .env is the common case.
	_ = godotenv.Load(filepath.Join(Dir(), envFileName))
}

// Reset clears everything Load registered. Tests use it between cases.
func Reset() {
	viper.Reset()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Dir returns the workflow data directory. An explicit override wins, then
// the directory Alfred assigns to the workflow, then ~/.alfred-pinboard.
func Dir() string {
	if v := viper.GetString(KeyDataDir); v != "" {
		return v
	}
	if v := viper.GetString(KeyWorkflowData); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// SettingsFormat returns the configured settings encoding, lower-cased.
func SettingsFormat() string {
	f := strings.ToLower(strings.TrimSpace(viper.GetString(KeySettingsFormat)))
	if f == "" {
		return defaultFormat
	}
	return f
}

// SettingsPath returns the full path of the persisted settings record,
// e.g. <data dir>/settings.yaml.
func SettingsPath() string {
	return filepath.Join(Dir(), settingsBase+"."+SettingsFormat())
}

// LogLevel returns the configured log level name.
func LogLevel() string {
	return viper.GetString(KeyLogLevel)
}

// DebugMode reports whether Alfred's workflow debugger is open.
func DebugMode() bool {
	return viper.GetBool(KeyAlfredDebug)
}

// AlfredVersion returns the host version string, empty outside Alfred.
func AlfredVersion() string {
	return viper.GetString(KeyAlfredVersion)
}
