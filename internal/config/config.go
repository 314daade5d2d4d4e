// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/patch"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`
	Patch   PatchConfig   `toml:"patch"`
	Wrapper WrapperConfig `toml:"wrapper"`
	Watch   WatchConfig   `toml:"watch"`

	// Problems found while loading, reported once logging is up.
	warnings []string
}

// PatchConfig selects and parameterises bundle patches.
type PatchConfig struct {
	Patches           []string `toml:"patches"` // Applied in this order
	Verbose           bool     `toml:"verbose"`
	RefreshIntervalMs int      `toml:"refresh_interval_ms"`
	ContextLowMessage string   `toml:"context_low_message"` // "prefix,suffix"; empty disables
	Backup            bool     `toml:"backup"`
	BackupSuffix      string   `toml:"backup_suffix"`
	VerifySyntax      bool     `toml:"verify_syntax"`
}

// WrapperConfig controls how `mycode run` launches the wrapped CLI.
type WrapperConfig struct {
	Binary            string `toml:"binary"` // Name or path; looked up on PATH
	Target            string `toml:"target"` // Bundle path; derived from Binary when empty
	PatchBeforeLaunch bool   `toml:"patch_before_launch"`
	PTY               bool   `toml:"pty"`
}

// WatchConfig controls `mycode watch`.
type WatchConfig struct {
	Debounce time.Duration `toml:"debounce"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// DefaultPatches is the patch list used when none is configured.
func DefaultPatches() []string {
	return []string{patch.NameVerbose, patch.NameContextLow, patch.NameEscInterrupt, patch.NameStatusRefresh}
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Patch: PatchConfig{
			Patches:           DefaultPatches(),
			Verbose:           true,
			RefreshIntervalMs: DefaultRefreshIntervalMs,
			Backup:            true,
			BackupSuffix:      DefaultBackupSuffix,
		},
		Wrapper: WrapperConfig{
			Binary:            DefaultWrappedBinary,
			PatchBeforeLaunch: true,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}

// DefaultPath returns the config file location under the user config dir,
// or "" when there is none.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		cfg.warnings = append(cfg.warnings, fmt.Sprintf("config file '%s': unrecognized keys: %v", filePath, undecoded))
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Patch.RefreshIntervalMs <= 0 {
		c.warnings = append(c.warnings, fmt.Sprintf("refresh_interval_ms %d is not positive, using %d", c.Patch.RefreshIntervalMs, DefaultRefreshIntervalMs))
		c.Patch.RefreshIntervalMs = defaults.Patch.RefreshIntervalMs
	}
	if c.Patch.BackupSuffix == "" {
		c.Patch.BackupSuffix = defaults.Patch.BackupSuffix
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = defaults.Watch.Debounce
	}
	if c.Wrapper.Binary == "" {
		c.Wrapper.Binary = defaults.Wrapper.Binary
	}

	if msg := c.Patch.ContextLowMessage; msg != "" {
		if prefix, _, _ := strings.Cut(msg, ","); prefix == "" {
			c.warnings = append(c.warnings, fmt.Sprintf("context_low_message %q has an empty prefix, ignored", msg))
			c.Patch.ContextLowMessage = ""
		}
	}

	kept := make([]string, 0, len(c.Patch.Patches))
	for _, name := range c.Patch.Patches {
		switch {
		case !slices.Contains(patch.KnownNames, name):
			c.warnings = append(c.warnings, fmt.Sprintf("unknown patch '%s' ignored", name))
		case name == patch.NameContextLowMessage && c.Patch.ContextLowMessage == "":
			c.warnings = append(c.warnings, "context-low-message requested without context_low_message, ignored")
		case slices.Contains(kept, name):
			// duplicate
		default:
			kept = append(kept, name)
		}
	}
	if len(kept) == 0 {
		kept = defaults.Patch.Patches
	}
	c.Patch.Patches = kept
}

// Warnings returns the problems found while loading.
func (c *Config) Warnings() []string {
	return c.warnings
}

// PatchOptions converts the patch section into registry options.
func (c *Config) PatchOptions() patch.Options {
	return patch.Options{
		Verbose:           c.Patch.Verbose,
		RefreshIntervalMs: c.Patch.RefreshIntervalMs,
		ContextLowMessage: c.Patch.ContextLowMessage,
	}
}

// Load builds a config from defaults, the file at configFilePath (or the
// default path when empty) and any flags set on fs.
func Load(configFilePath string, flags *Flags, fs *pflag.FlagSet) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var err error
	if effectivePath != "" {
		err = loadFromFile(effectivePath, cfg)
	}
	if flags != nil && fs != nil {
		flags.ApplyOverrides(cfg, fs)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig loads the process-wide config once. Later calls return the
// first result.
func LoadConfig(configFilePath string, flags *Flags, fs *pflag.FlagSet) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags, fs)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
