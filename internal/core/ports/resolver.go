package ports

import (
	"context"

	"go.trai.ch/margo/internal/core/domain"
)

// LinkResolver resolves package records to download URLs.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type LinkResolver interface {
	// Resolve returns the URL the archive of record can be downloaded from.
	Resolve(ctx context.Context, record domain.PackageRecord) (string, error)
}

// ResolverFactory creates a LinkResolver bound to one registry.
type ResolverFactory interface {
	NewResolver(registry domain.RegistryConfig, http domain.HTTPConfig) LinkResolver
}
