// Package download fetches crate archives and stores them once their checksum is verified.
package download

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/margo/internal/core/ports"
	"go.trai.ch/zerr"
)

// Downloader implements ports.Downloader over HTTP.
type Downloader struct {
	userAgent  string
	httpClient *http.Client
}

var _ ports.Downloader = (*Downloader)(nil)

// NewDownloader creates a Downloader with the given transport settings.
func NewDownloader(cfg domain.HTTPConfig) *Downloader {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	return newDownloaderWithClient(cfg.UserAgent, &http.Client{Timeout: timeout})
}

// newDownloaderWithClient creates a Downloader with a custom http client (used for testing).
func newDownloaderWithClient(userAgent string, client *http.Client) *Downloader {
	return &Downloader{
		userAgent:  userAgent,
		httpClient: client,
	}
}

// Download fetches url and writes the body to targetPath if its sha256 equals expectedChecksum.
// Nothing is written on any failure, and an existing file at targetPath is left untouched.
func (d *Downloader) Download(ctx context.Context, url, targetPath, expectedChecksum string) error {
	data, err := d.fetch(ctx, url)
	if err != nil {
		return domain.NewError(domain.ErrDownload, err)
	}

	if !domain.VerifyChecksum(data, expectedChecksum) {
		mismatch := zerr.With(zerr.New("downloaded archive does not match lockfile"), "expected", expectedChecksum)
		mismatch = zerr.With(mismatch, "actual", domain.Checksum(data))
		return domain.NewError(domain.ErrChecksumMismatch, zerr.With(mismatch, "url", url))
	}

	if err := atomicWriteFile(ctx, targetPath, data); err != nil {
		return domain.NewError(domain.ErrIO, zerr.With(err, "path", targetPath))
	}
	return nil
}

func (d *Downloader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid download request"), "url", url)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "download request failed"), "url", url)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := zerr.With(zerr.New("unexpected download status"), "status_code", resp.StatusCode)
		return nil, zerr.With(statusErr, "url", url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read download body"), "url", url)
	}
	return data, nil
}

// atomicWriteFile writes data to a temp file next to path and renames it onto path.
// The temp file never outlives a failed write.
func atomicWriteFile(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp file")
	}
	tmpName := tmpFile.Name()

	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, "failed to write temp file")
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, "failed to sync temp file")
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp file")
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to set file mode")
	}

	// Honor cancellation before publishing the archive.
	if err := ctx.Err(); err != nil {
		return zerr.Wrap(err, "download canceled")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(err, "failed to move archive into place")
	}
	renamed = true
	return nil
}
