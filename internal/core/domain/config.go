package domain

import "time"

// DefaultTimeout bounds a single HTTP call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Config holds the settings of one run.
type Config struct {
	Lockfile    string         `mapstructure:"lockfile"`
	CargoDir    string         `mapstructure:"cargo_dir"`
	Registry    RegistryConfig `mapstructure:"registry"`
	Concurrency int            `mapstructure:"concurrency"`
	Timeout     time.Duration  `mapstructure:"timeout"`
	UserAgent   string         `mapstructure:"user_agent"`
	Report      string         `mapstructure:"report"`
	Log         LogConfig      `mapstructure:"log"`
}

// RegistryConfig identifies the remote index and its local cache directory name.
type RegistryConfig struct {
	URL  string `mapstructure:"url"`
	Name string `mapstructure:"name"`
}

// Source returns the lockfile source identifier of packages from this registry.
func (r RegistryConfig) Source() string {
	return RegistrySource(r.URL)
}

// LogConfig controls log format and the optional rotating log file.
type LogConfig struct {
	JSON       bool   `mapstructure:"json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// HTTPConfig is the transport configuration shared by the resolver and the downloader.
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// HTTP returns the transport settings of the config.
func (c *Config) HTTP() HTTPConfig {
	return HTTPConfig{
		Timeout:   c.Timeout,
		UserAgent: c.UserAgent,
	}
}
