// Package config loads the run configuration from defaults, a YAML file, MARGO_* environment
// variables and command-line overrides, in increasing order of precedence.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/margo/internal/core/ports"
	"go.trai.ch/zerr"
)

const envPrefix = "MARGO"

// Loader implements ports.ConfigLoader using viper.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.ConfigLoader = (*Loader)(nil)

// Load builds the configuration. When path is empty, margo.yaml in the working directory
// is used if it exists.
func (l *Loader) Load(path string, overrides map[string]any) (*domain.Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = discover()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			kind := domain.ErrConfigReadFailed
			if errors.As(err, &viper.ConfigParseError{}) {
				kind = domain.ErrConfigParseFailed
			}
			return nil, domain.NewError(kind, zerr.With(err, "path", path))
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg domain.Config
	hook := mapstructure.ComposeDecodeHookFunc(
		durationHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hook)); err != nil {
		return nil, domain.NewError(domain.ErrConfigParseFailed, err)
	}

	cfg.CargoDir = expandHome(cfg.CargoDir)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// discover returns the default config file name if it exists in the working directory.
func discover() string {
	info, err := os.Stat(domain.ConfigFileName)
	if err != nil || info.IsDir() {
		return ""
	}
	return domain.ConfigFileName
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + strings.TrimPrefix(path, "~")
}
