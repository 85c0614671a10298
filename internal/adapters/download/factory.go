package download

import (
	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/margo/internal/core/ports"
)

// Factory implements ports.DownloaderFactory.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewDownloader creates a Downloader with the given transport settings.
func (f *Factory) NewDownloader(http domain.HTTPConfig) ports.Downloader {
	return NewDownloader(http)
}
