package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/margo/internal/core/domain"
)

func TestFetchTarget_Path(t *testing.T) {
	rec := domain.PackageRecord{Name: "foo", Version: "1.0.0", Source: cratesIO, Checksum: strPtr("aa")}
	target := domain.FetchTarget{Record: rec, CacheRoot: "/home/u/.cargo", RegistryName: domain.DefaultRegistryName}

	want := filepath.Join("/home/u/.cargo", "registry", "cache", domain.DefaultRegistryName, "foo-1.0.0.crate")
	assert.Equal(t, want, target.Path())
	assert.Equal(t, target.Path(), target.Path())
	assert.Equal(t, "foo@1.0.0", target.ID())
	assert.Equal(t, "aa", target.Checksum())
}

func TestFetchTarget_PathDependsOnEveryInput(t *testing.T) {
	base := domain.FetchTarget{
		Record:       domain.PackageRecord{Name: "foo", Version: "1.0.0"},
		CacheRoot:    "/cache",
		RegistryName: "reg",
	}

	variants := map[string]domain.FetchTarget{}

	v := base
	v.Record.Name = "bar"
	variants["name"] = v

	v = base
	v.Record.Version = "1.0.1"
	variants["version"] = v

	v = base
	v.CacheRoot = "/other"
	variants["cache root"] = v

	v = base
	v.RegistryName = "other-reg"
	variants["registry name"] = v

	for field, variant := range variants {
		assert.NotEqual(t, base.Path(), variant.Path(), "changing %s must change the path", field)
	}
}

func TestNewFetchTargets(t *testing.T) {
	records := []domain.PackageRecord{
		{Name: "a", Version: "1.0.0"},
		{Name: "b", Version: "2.0.0"},
	}

	targets := domain.NewFetchTargets(records, "/cache", "reg")
	assert.Len(t, targets, 2)
	assert.Equal(t, "a@1.0.0", targets[0].ID())
	assert.Equal(t, "b@2.0.0", targets[1].ID())
	assert.Empty(t, targets[0].Checksum())
	for _, target := range targets {
		assert.Equal(t, filepath.Join("/cache", "registry", "cache", "reg"), filepath.Dir(target.Path()))
	}
}
