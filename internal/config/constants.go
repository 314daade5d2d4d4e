package config

import "time"

// Base application details
const AppName = "mycode"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "mycode.log"

// Version is stamped at build time with -ldflags.
var Version = "dev"

// Patching
const DefaultRefreshIntervalMs = 30000
const DefaultBackupSuffix = ".backup"

// Wrapper
const DefaultWrappedBinary = "claude"
const WrapperEnv = "MYCODE_WRAPPER"
const VersionEnv = "MYCODE_VERSION"

// Watch
const DefaultDebounce = 500 * time.Millisecond
