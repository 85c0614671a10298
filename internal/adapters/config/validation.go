package config

import (
	"net/url"
	"strings"

	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Validate checks that cfg can drive a run.
func Validate(cfg *domain.Config) error {
	switch {
	case cfg.Lockfile == "":
		return invalid("lockfile", "must not be empty")
	case cfg.CargoDir == "":
		return invalid("cargo_dir", "must not be empty")
	case cfg.Concurrency < 1:
		return invalid("concurrency", "must be at least 1")
	case cfg.Timeout <= 0:
		return invalid("timeout", "must be positive")
	}

	u, err := url.Parse(cfg.Registry.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("registry.url", "must be an absolute http(s) URL")
	}

	name := cfg.Registry.Name
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return invalid("registry.name", "must be a single path element")
	}

	return nil
}

func invalid(field, reason string) error {
	err := zerr.With(zerr.New(reason), "field", field)
	return domain.NewError(domain.ErrInvalidConfig, err)
}
