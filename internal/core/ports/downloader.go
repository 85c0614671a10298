package ports

import (
	"context"

	"go.trai.ch/margo/internal/core/domain"
)

// Downloader fetches, verifies and persists crate archives.
//
//go:generate mockgen -source=downloader.go -destination=mocks/mock_downloader.go -package=mocks
type Downloader interface {
	// Download fetches url and writes the body to targetPath only if its checksum equals expectedChecksum.
	Download(ctx context.Context, url, targetPath, expectedChecksum string) error
}

// DownloaderFactory creates a Downloader with the given transport settings.
type DownloaderFactory interface {
	NewDownloader(http domain.HTTPConfig) Downloader
}
