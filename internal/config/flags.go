// internal/config/flags.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero values.
type Flags struct {
	ConfigFilePath *string
	LogLevel       *string
	LogFilePath    *string
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string

	Patches           *string
	Verbose           *bool
	RefreshIntervalMs *int
	ContextLowMessage *string
	Backup            *bool
	VerifySyntax      *bool

	Binary *string
	Target *string
	PTY    *bool

	Debounce *time.Duration
}

// DefineFlags registers the flags on fs.
func (f *Flags) DefineFlags(fs *pflag.FlagSet) {
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.LogLevel = fs.String("log-level", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("log-file", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")

	f.Patches = fs.String("patches", "", "Comma-separated patches to apply, in order")
	f.Verbose = fs.Bool("set-verbose", true, "Value written by the verbose patch")
	f.RefreshIntervalMs = fs.Int("refresh-interval", 0, "Status line refresh interval in milliseconds")
	f.ContextLowMessage = fs.String("context-low-message", "", `Replacement context low message as "prefix,suffix"`)
	f.Backup = fs.Bool("backup", true, "Copy the bundle aside before the first write")
	f.VerifySyntax = fs.Bool("verify-syntax", false, "Parse around each splice and warn on new syntax errors")

	f.Binary = fs.String("binary", "", "Wrapped executable name or path")
	f.Target = fs.String("target", "", "Bundle to patch before launch (derived from --binary when empty)")
	f.PTY = fs.Bool("pty", false, "Run the wrapped executable inside a pseudo-terminal")

	f.Debounce = fs.Duration("debounce", 0, "Quiet period before re-patching a changed bundle")
}

// ApplyOverrides updates cfg with values from flags that were set on fs.
func (f *Flags) ApplyOverrides(cfg *Config, fs *pflag.FlagSet) {
	// Visit only processes flags that were actually set
	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "log-level":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "log-file":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "patches":
			if list := splitCommaList(*f.Patches); len(list) > 0 {
				cfg.Patch.Patches = list
			}
		case "set-verbose":
			cfg.Patch.Verbose = *f.Verbose
		case "refresh-interval":
			if *f.RefreshIntervalMs > 0 {
				cfg.Patch.RefreshIntervalMs = *f.RefreshIntervalMs
			}
		case "context-low-message":
			cfg.Patch.ContextLowMessage = *f.ContextLowMessage
		case "backup":
			cfg.Patch.Backup = *f.Backup
		case "verify-syntax":
			cfg.Patch.VerifySyntax = *f.VerifySyntax
		case "binary":
			if *f.Binary != "" {
				cfg.Wrapper.Binary = *f.Binary
			}
		case "target":
			cfg.Wrapper.Target = *f.Target
		case "pty":
			cfg.Wrapper.PTY = *f.PTY
		case "debounce":
			if *f.Debounce > 0 {
				cfg.Watch.Debounce = *f.Debounce
			}
		}
	})
}

// splitCommaList splits a comma-separated list, dropping blanks.
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
