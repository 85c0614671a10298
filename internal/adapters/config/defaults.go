package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
	"go.trai.ch/margo/internal/build"
	"go.trai.ch/margo/internal/core/domain"
)

const (
	defaultLogSizeMB  = 10
	defaultLogBackups = 3
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("lockfile", domain.LockfileName)
	v.SetDefault("cargo_dir", defaultCargoDir())
	v.SetDefault("registry.url", domain.DefaultRegistryURL)
	v.SetDefault("registry.name", domain.DefaultRegistryName)
	v.SetDefault("concurrency", runtime.NumCPU())
	v.SetDefault("timeout", domain.DefaultTimeout)
	v.SetDefault("user_agent", "margo/"+build.Version)
	v.SetDefault("report", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", defaultLogSizeMB)
	v.SetDefault("log.max_backups", defaultLogBackups)
	v.SetDefault("log.compress", false)
}

// defaultCargoDir mirrors cargo: $CARGO_HOME, else ~/.cargo.
func defaultCargoDir() string {
	if dir := os.Getenv("CARGO_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cargo")
}
