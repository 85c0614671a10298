package registry

import (
	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/margo/internal/core/ports"
)

// Factory implements ports.ResolverFactory.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewResolver creates a Resolver for registry.
func (f *Factory) NewResolver(registry domain.RegistryConfig, http domain.HTTPConfig) ports.LinkResolver {
	return NewResolver(registry.URL, http)
}
