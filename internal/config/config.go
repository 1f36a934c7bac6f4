package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/initkit/internal/branding"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Setting keys.
const (
	KeyBootstrapDir = "bootstrap_dir"
	KeyDocsRoot     = "docs_root"
	KeyBlueprint    = "blueprint"
	KeyProviders    = "providers"
	KeyTemplatesDir = "templates_dir"
	KeySyncCommand  = "sync_command"
	KeyLogLevel     = "log_level"
	KeyFormat       = "format"
)

var defaults = map[string]string{
	KeyBootstrapDir: "init",
	KeyDocsRoot:     filepath.Join("init", "stage-a-docs"),
	KeyBlueprint:    filepath.Join("init", "project-blueprint.json"),
	KeyProviders:    "both",
	KeyTemplatesDir: "",
	KeySyncCommand:  "node",
	KeyLogLevel:     "warn",
	KeyFormat:       "text",
}

// Config is a layered view over initkit settings.
type Config struct {
	v *viper.Viper
}

// New returns a Config holding the built-in defaults and reading
// INITKIT_* environment variables.
func New() *Config {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &Config{v: v}
}

// FilePath returns the path to the per-repository config file.
func FilePath(repoRoot string) string {
	return filepath.Join(repoRoot, branding.ConfigFile())
}

// LoadRepoFile merges <repoRoot>/.initkit.yaml into the config.
// A missing file is not an error.
func (c *Config) LoadRepoFile(repoRoot string) error {
	path := FilePath(repoRoot)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking config file %s: %w", path, err)
	}

	c.v.SetConfigFile(path)
	c.v.SetConfigType(fileType)
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// Override sets a value with the highest precedence. The CLI uses it for
// flags the user passed explicitly.
func (c *Config) Override(key, value string) {
	c.v.Set(key, value)
}

// Get returns a config value by key. Returns empty string if not set.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// Path returns the value of key resolved against repoRoot.
func (c *Config) Path(repoRoot, key string) string {
	return ResolvePath(repoRoot, c.Get(key))
}

// ResolvePath returns p unchanged when absolute, otherwise joined to base.
// An empty p yields an empty string.
func ResolvePath(base, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
