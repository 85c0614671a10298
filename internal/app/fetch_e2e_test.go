package app_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/margo/internal/adapters/config"
	"go.trai.ch/margo/internal/adapters/download"
	"go.trai.ch/margo/internal/adapters/fs"
	"go.trai.ch/margo/internal/adapters/linear"
	"go.trai.ch/margo/internal/adapters/lockfile"
	"go.trai.ch/margo/internal/adapters/logger"
	"go.trai.ch/margo/internal/adapters/registry"
	"go.trai.ch/margo/internal/adapters/report"
	"go.trai.ch/margo/internal/app"
	"go.trai.ch/margo/internal/core/domain"
	"gopkg.in/yaml.v3"
)

const e2eRegistryName = "example.org-e2e"

type registryServer struct {
	*httptest.Server
	archive []byte
	hits    atomic.Int32
}

func newRegistryServer(t *testing.T, archive []byte) *registryServer {
	t.Helper()
	rs := &registryServer{archive: archive}

	mux := http.NewServeMux()
	mux.HandleFunc("/raw/master/config.json", func(w http.ResponseWriter, _ *http.Request) {
		rs.hits.Add(1)
		_, _ = fmt.Fprintf(w, `{"dl": %q}`, rs.URL+"/api/v1/crates")
	})
	mux.HandleFunc("/api/v1/crates/foo/1.0.0/download", func(w http.ResponseWriter, _ *http.Request) {
		rs.hits.Add(1)
		_, _ = w.Write(rs.archive)
	})

	rs.Server = httptest.NewServer(mux)
	t.Cleanup(rs.Close)
	return rs
}

type e2e struct {
	app      *app.App
	opts     app.Options
	cacheDir string
	report   string
	logs     *bytes.Buffer
	progress *bytes.Buffer
}

func newE2E(t *testing.T, srv *registryServer, checksum string) *e2e {
	t.Helper()
	dir := t.TempDir()

	lock := fmt.Sprintf("[metadata]\n%q = %q\n",
		"checksum foo 1.0.0 (registry+"+srv.URL+")", checksum)
	lockPath := filepath.Join(dir, "Cargo.lock")
	require.NoError(t, os.WriteFile(lockPath, []byte(lock), domain.FilePerm))

	e := &e2e{
		cacheDir: filepath.Join(dir, "cargo"),
		report:   filepath.Join(dir, "report.yaml"),
		logs:     &bytes.Buffer{},
		progress: &bytes.Buffer{},
	}
	e.opts = app.Options{Overrides: map[string]any{
		"lockfile":      lockPath,
		"cargo_dir":     e.cacheDir,
		"registry.url":  srv.URL,
		"registry.name": e2eRegistryName,
		"concurrency":   2,
		"report":        e.report,
	}}

	log := logger.New()
	log.SetOutput(e.logs)

	e.app = app.New(
		config.NewLoader(),
		lockfile.NewLoader(),
		registry.NewFactory(),
		download.NewFactory(),
		report.NewWriter(),
		fs.NewArchiveCache(),
		linear.NewRenderer(e.progress),
		log,
	)
	return e
}

func (e *e2e) targetPath() string {
	return filepath.Join(domain.RegistryCacheDir(e.cacheDir, e2eRegistryName), "foo-1.0.0.crate")
}

func (e *e2e) readReport(t *testing.T) *domain.Report {
	t.Helper()
	data, err := os.ReadFile(e.report)
	require.NoError(t, err)
	var r domain.Report
	require.NoError(t, yaml.Unmarshal(data, &r))
	return &r
}

func TestFetch_EndToEnd(t *testing.T) {
	archive := []byte("foo 1.0.0 crate archive")

	t.Run("fetches missing crate", func(t *testing.T) {
		srv := newRegistryServer(t, archive)
		e := newE2E(t, srv, domain.Checksum(archive))

		require.NoError(t, e.app.Fetch(t.Context(), app.FetchOptions{Options: e.opts}))

		data, err := os.ReadFile(e.targetPath())
		require.NoError(t, err)
		assert.Equal(t, archive, data)
		assert.Contains(t, e.logs.String(), "0 already cached, 1 to fetch")
		assert.Contains(t, e.logs.String(), "fetched 1, already cached 0, failed 0")
		assert.Contains(t, e.progress.String(), "✓ foo@1.0.0 fetched in")

		r := e.readReport(t)
		assert.Equal(t, 1, r.Fetched)
		assert.Equal(t, srv.URL, r.Registry)
		require.Len(t, r.Crates, 1)
		assert.Equal(t, domain.OutcomeFetched, r.Crates[0].Status)
	})

	t.Run("checksum mismatch leaves no file", func(t *testing.T) {
		srv := newRegistryServer(t, archive)
		e := newE2E(t, srv, domain.Checksum([]byte("something else")))

		err := e.app.Fetch(t.Context(), app.FetchOptions{Options: e.opts})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrFetchFailed)
		assert.ErrorIs(t, err, domain.ErrChecksumMismatch)
		assert.NoFileExists(t, e.targetPath())
		assert.Contains(t, e.progress.String(), "✗ foo@1.0.0 failed: checksum_mismatch")

		r := e.readReport(t)
		assert.Equal(t, 1, r.Failed)
		require.Len(t, r.Crates, 1)
		assert.Equal(t, domain.OutcomeFailed, r.Crates[0].Status)
		assert.Equal(t, "checksum_mismatch", r.Crates[0].Kind)
	})

	t.Run("cached crate issues no requests", func(t *testing.T) {
		srv := newRegistryServer(t, archive)
		e := newE2E(t, srv, domain.Checksum(archive))
		writeArchive(t, e.targetPath(), []byte("already here"))

		require.NoError(t, e.app.Fetch(t.Context(), app.FetchOptions{Options: e.opts}))

		assert.Zero(t, srv.hits.Load())
		assert.Contains(t, e.logs.String(), "1 already cached, 0 to fetch")

		data, err := os.ReadFile(e.targetPath())
		require.NoError(t, err)
		assert.Equal(t, "already here", string(data))
	})

	t.Run("verify after fetch", func(t *testing.T) {
		srv := newRegistryServer(t, archive)
		e := newE2E(t, srv, domain.Checksum(archive))

		require.NoError(t, e.app.Fetch(t.Context(), app.FetchOptions{Options: e.opts}))
		require.NoError(t, e.app.Verify(t.Context(), app.VerifyOptions{Options: e.opts}))

		require.NoError(t, os.WriteFile(e.targetPath(), []byte("tampered"), domain.FilePerm))
		err := e.app.Verify(t.Context(), app.VerifyOptions{Options: e.opts, Prune: true})
		assert.ErrorIs(t, err, domain.ErrVerifyFailed)
		assert.NoFileExists(t, e.targetPath())
	})
}
