package download

import "net/http"

// NewDownloaderWithClient exports newDownloaderWithClient for testing.
func NewDownloaderWithClient(userAgent string, client *http.Client) *Downloader {
	return newDownloaderWithClient(userAgent, client)
}
