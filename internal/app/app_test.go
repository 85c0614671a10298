package app_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/margo/internal/adapters/fs"
	"go.trai.ch/margo/internal/app"
	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/margo/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const testRegistryURL = "https://example.org/index"

type fixture struct {
	loader      *mocks.MockConfigLoader
	lockfiles   *mocks.MockLockfileLoader
	resolvers   *mocks.MockResolverFactory
	resolver    *mocks.MockLinkResolver
	downloaders *mocks.MockDownloaderFactory
	downloader  *mocks.MockDownloader
	reports     *mocks.MockReportWriter
	renderer    *mocks.MockRenderer
	logger      *mocks.MockLogger

	cfg *domain.Config
	app *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:      mocks.NewMockConfigLoader(ctrl),
		lockfiles:   mocks.NewMockLockfileLoader(ctrl),
		resolvers:   mocks.NewMockResolverFactory(ctrl),
		resolver:    mocks.NewMockLinkResolver(ctrl),
		downloaders: mocks.NewMockDownloaderFactory(ctrl),
		downloader:  mocks.NewMockDownloader(ctrl),
		reports:     mocks.NewMockReportWriter(ctrl),
		renderer:    mocks.NewMockRenderer(ctrl),
		logger:      mocks.NewMockLogger(ctrl),
		cfg: &domain.Config{
			Lockfile:    "Cargo.lock",
			CargoDir:    t.TempDir(),
			Registry:    domain.RegistryConfig{URL: testRegistryURL, Name: "example.org-0000"},
			Concurrency: 2,
			Timeout:     domain.DefaultTimeout,
			UserAgent:   "margo/test",
		},
	}
	f.app = app.New(f.loader, f.lockfiles, f.resolvers, f.downloaders, f.reports, fs.NewArchiveCache(), f.renderer, f.logger)
	return f
}

func (f *fixture) allowInfo() {
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
}

func (f *fixture) expectPrepare(lf *domain.Lockfile) {
	f.loader.EXPECT().Load("", gomock.Any()).Return(f.cfg, nil)
	f.logger.EXPECT().Configure(f.cfg.Log).Return(nil)
	f.lockfiles.EXPECT().Load(f.cfg.Lockfile).Return(lf, "fingerprint", nil)
}

func (f *fixture) expectFactories() {
	f.resolvers.EXPECT().NewResolver(f.cfg.Registry, f.cfg.HTTP()).Return(f.resolver)
	f.downloaders.EXPECT().NewDownloader(f.cfg.HTTP()).Return(f.downloader)
}

func (f *fixture) target(name, version string) domain.FetchTarget {
	return domain.FetchTarget{
		Record:       domain.PackageRecord{Name: name, Version: version},
		CacheRoot:    f.cfg.CargoDir,
		RegistryName: f.cfg.Registry.Name,
	}
}

func lockfileOf(pkgs ...domain.LockedPackage) *domain.Lockfile {
	return &domain.Lockfile{Version: 3, Packages: pkgs}
}

func pkg(name, version, checksum string) domain.LockedPackage {
	return domain.LockedPackage{
		Name:     name,
		Version:  version,
		Source:   domain.RegistrySource(testRegistryURL),
		Checksum: checksum,
	}
}

func writeArchive(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, data, domain.FilePerm))
}

func TestApp_Fetch(t *testing.T) {
	f := newFixture(t)
	f.allowInfo()
	lf := lockfileOf(
		pkg("libc", "0.2.43", "aaaa"),
		pkg("serde", "1.0.80", "bbbb"),
		domain.LockedPackage{Name: "local", Version: "0.1.0"},
	)
	writeArchive(t, f.target("libc", "0.2.43").Path(), []byte("cached"))

	f.expectPrepare(lf)
	f.expectFactories()

	serde := f.target("serde", "1.0.80")
	f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return("https://dl/serde", nil)
	f.downloader.EXPECT().Download(gomock.Any(), "https://dl/serde", serde.Path(), "bbbb").Return(nil)

	f.renderer.EXPECT().OnPlan([]string{"libc@0.2.43"}, []string{"serde@1.0.80"})
	f.renderer.EXPECT().OnTaskStart(gomock.Any(), "serde@1.0.80", gomock.Any())
	f.renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil)

	err := f.app.Fetch(t.Context(), app.FetchOptions{})
	require.NoError(t, err)
}

func TestApp_Fetch_FailureWritesReport(t *testing.T) {
	f := newFixture(t)
	f.allowInfo()
	f.cfg.Report = filepath.Join(t.TempDir(), "report.yaml")
	lf := lockfileOf(pkg("serde", "1.0.80", "bbbb"), pkg("time", "0.1.40", "cccc"))

	f.expectPrepare(lf)
	f.expectFactories()

	errSum := domain.NewError(domain.ErrChecksumMismatch, errors.New("digest differs"))
	f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return("https://dl/x", nil).Times(2)
	f.downloader.EXPECT().Download(gomock.Any(), gomock.Any(), f.target("serde", "1.0.80").Path(), gomock.Any()).Return(errSum)
	f.downloader.EXPECT().Download(gomock.Any(), gomock.Any(), f.target("time", "0.1.40").Path(), gomock.Any()).Return(nil)

	f.renderer.EXPECT().OnPlan(gomock.Any(), gomock.Any())
	f.renderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
	f.renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrChecksumMismatch)
	})

	f.reports.EXPECT().Write(f.cfg.Report, gomock.Any()).DoAndReturn(func(_ string, r *domain.Report) error {
		assert.Equal(t, "fingerprint", r.LockfileFingerprint)
		assert.Equal(t, testRegistryURL, r.Registry)
		assert.Equal(t, 1, r.Fetched)
		assert.Equal(t, 1, r.Failed)
		require.Len(t, r.Crates, 2)
		assert.Equal(t, "checksum_mismatch", r.Crates[0].Kind)
		return nil
	})

	err := f.app.Fetch(t.Context(), app.FetchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.ErrorIs(t, err, domain.ErrChecksumMismatch)
}

func TestApp_Fetch_ReportError(t *testing.T) {
	f := newFixture(t)
	f.allowInfo()
	f.cfg.Report = "report.yaml"
	f.expectPrepare(lockfileOf())
	f.expectFactories()
	f.renderer.EXPECT().OnPlan(gomock.Any(), gomock.Any()).AnyTimes()

	errWrite := domain.NewError(domain.ErrReportWriteFailed, errors.New("read-only"))
	f.reports.EXPECT().Write("report.yaml", gomock.Any()).Return(errWrite)

	err := f.app.Fetch(t.Context(), app.FetchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReportWriteFailed)
	assert.NotErrorIs(t, err, domain.ErrFetchFailed)
}

func TestApp_Fetch_ConfigError(t *testing.T) {
	f := newFixture(t)
	overrides := map[string]any{"concurrency": 0}
	f.loader.EXPECT().Load("margo.yaml", overrides).Return(nil, domain.ErrInvalidConfig)

	err := f.app.Fetch(t.Context(), app.FetchOptions{Options: app.Options{ConfigPath: "margo.yaml", Overrides: overrides}})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestApp_Fetch_LogSetupError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("", gomock.Any()).Return(f.cfg, nil)
	f.logger.EXPECT().Configure(f.cfg.Log).Return(domain.ErrLogSetupFailed)

	err := f.app.Fetch(t.Context(), app.FetchOptions{})
	assert.ErrorIs(t, err, domain.ErrLogSetupFailed)
}

func TestApp_Fetch_ParseErrorStopsBeforeNetwork(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("", gomock.Any()).Return(f.cfg, nil)
	f.logger.EXPECT().Configure(gomock.Any()).Return(nil)
	f.lockfiles.EXPECT().Load(f.cfg.Lockfile).Return(nil, "", domain.NewError(domain.ErrParse, errors.New("bad toml")))

	err := f.app.Fetch(t.Context(), app.FetchOptions{})
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestApp_Fetch_MalformedMetadata(t *testing.T) {
	f := newFixture(t)
	lf := &domain.Lockfile{Metadata: map[string]string{"checksum broken": "abc"}}
	f.expectPrepare(lf)

	err := f.app.Fetch(t.Context(), app.FetchOptions{})
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestApp_Verify(t *testing.T) {
	good := []byte("good archive")
	lf := lockfileOf(
		pkg("good", "1.0.0", domain.Checksum(good)),
		pkg("corrupt", "1.0.0", domain.Checksum([]byte("expected"))),
		pkg("missing", "1.0.0", domain.Checksum([]byte("whatever"))),
	)

	t.Run("reports corrupt archives", func(t *testing.T) {
		f := newFixture(t)
		writeArchive(t, f.target("good", "1.0.0").Path(), good)
		corrupt := f.target("corrupt", "1.0.0").Path()
		writeArchive(t, corrupt, []byte("tampered"))
		f.expectPrepare(lf)
		f.logger.EXPECT().Info("verified 1, failed 1, missing 1")

		err := f.app.Verify(t.Context(), app.VerifyOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrVerifyFailed)
		assert.ErrorIs(t, err, domain.ErrChecksumMismatch)
		assert.FileExists(t, corrupt)
	})

	t.Run("prune removes corrupt archives", func(t *testing.T) {
		f := newFixture(t)
		f.allowInfo()
		corrupt := f.target("corrupt", "1.0.0").Path()
		writeArchive(t, corrupt, []byte("tampered"))
		f.expectPrepare(lf)
		f.logger.EXPECT().Warn("removed corrupt archive " + corrupt)

		err := f.app.Verify(t.Context(), app.VerifyOptions{Prune: true})
		assert.ErrorIs(t, err, domain.ErrVerifyFailed)
		assert.NoFileExists(t, corrupt)
	})

	t.Run("clean cache", func(t *testing.T) {
		f := newFixture(t)
		f.allowInfo()
		writeArchive(t, f.target("good", "1.0.0").Path(), good)
		f.expectPrepare(lockfileOf(pkg("good", "1.0.0", domain.Checksum(good))))

		assert.NoError(t, f.app.Verify(t.Context(), app.VerifyOptions{}))
	})
}

func TestApp_List(t *testing.T) {
	f := newFixture(t)
	lf := lockfileOf(pkg("libc", "0.2.43", "aaaa"), pkg("serde", "1.0.80", "bbbb"))
	libc := f.target("libc", "0.2.43")
	serde := f.target("serde", "1.0.80")
	writeArchive(t, libc.Path(), []byte("cached"))
	f.expectPrepare(lf)

	var buf bytes.Buffer
	require.NoError(t, f.app.List(t.Context(), app.ListOptions{}, &buf))

	want := "libc@0.2.43 cached " + libc.Path() + "\n" +
		"serde@1.0.80 missing " + serde.Path() + "\n"
	assert.Equal(t, want, buf.String())
}

func TestApp_NoRenderer(t *testing.T) {
	f := newFixture(t)
	f.allowInfo()
	a := app.New(f.loader, f.lockfiles, f.resolvers, f.downloaders, f.reports, fs.NewArchiveCache(), nil, f.logger)
	f.expectPrepare(lockfileOf(pkg("serde", "1.0.80", "bbbb")))
	f.expectFactories()
	f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return("https://dl/serde", nil)
	f.downloader.EXPECT().Download(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, a.Fetch(t.Context(), app.FetchOptions{}))
}

func TestApp_Verify_CacheError(t *testing.T) {
	f := newFixture(t)
	f.allowInfo()
	cache := mocks.NewMockArchiveCache(gomock.NewController(t))
	a := app.New(f.loader, f.lockfiles, f.resolvers, f.downloaders, f.reports, cache, nil, f.logger)
	f.expectPrepare(lockfileOf(pkg("a", "1.0.0", "aaaa"), pkg("b", "1.0.0", "bbbb")))

	errIO := domain.NewError(domain.ErrIO, errors.New("permission denied"))
	cache.EXPECT().Exists(f.target("a", "1.0.0").Path()).Return(false, errIO)
	cache.EXPECT().Exists(f.target("b", "1.0.0").Path()).Return(true, nil)
	cache.EXPECT().Hash(f.target("b", "1.0.0").Path()).Return("bbbb", nil)

	err := a.Verify(t.Context(), app.VerifyOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVerifyFailed)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.NotErrorIs(t, err, domain.ErrChecksumMismatch)
}
