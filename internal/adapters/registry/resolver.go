// Package registry resolves crate download links through a remote index's config.json.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/margo/internal/core/ports"
	"go.trai.ch/zerr"
)

const configPath = "/raw/master/config.json"

var configSchema = jsonschema.MustCompileString("config.json", `{
	"type": "object",
	"required": ["dl"],
	"properties": {
		"dl": {"type": "string", "minLength": 1},
		"api": {"type": "string"}
	}
}`)

// Resolver implements ports.LinkResolver for one remote registry.
// The registry's base download URL is fetched on first use and cached for the lifetime of the Resolver.
type Resolver struct {
	root       string
	userAgent  string
	httpClient *http.Client

	mu       sync.RWMutex
	baseURL  string
	resolved bool
}

var _ ports.LinkResolver = (*Resolver)(nil)

// NewResolver creates a Resolver for the index at root.
func NewResolver(root string, cfg domain.HTTPConfig) *Resolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	return newResolverWithClient(root, cfg.UserAgent, &http.Client{Timeout: timeout})
}

// newResolverWithClient creates a Resolver with a custom http client (used for testing).
// Redirects are never followed by the client itself.
func newResolverWithClient(root, userAgent string, client *http.Client) *Resolver {
	c := *client
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Resolver{
		root:       strings.TrimSuffix(root, "/"),
		userAgent:  userAgent,
		httpClient: &c,
	}
}

// Resolve returns {dl}/{name}/{version}/download for record.
func (r *Resolver) Resolve(ctx context.Context, record domain.PackageRecord) (string, error) {
	base, ok := r.BaseURL()
	if !ok {
		var err error
		base, err = r.fetchBaseURL(ctx)
		if err != nil {
			return "", domain.NewError(domain.ErrResolution, zerr.With(err, "crate", record.Name+"@"+record.Version))
		}

		r.mu.Lock()
		r.baseURL = base
		r.resolved = true
		r.mu.Unlock()
	}

	return base + "/" + record.Name + "/" + record.Version + "/download", nil
}

// BaseURL returns the cached base download URL and whether it has been resolved.
func (r *Resolver) BaseURL() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.baseURL, r.resolved
}

func (r *Resolver) fetchBaseURL(ctx context.Context) (string, error) {
	url := r.root + configPath

	resp, err := r.get(ctx, url)
	if err != nil {
		return "", err
	}

	if isRedirect(resp.StatusCode) {
		loc, locErr := resp.Location()
		closeBody(resp)
		if locErr != nil {
			return "", zerr.With(zerr.Wrap(locErr, "redirect without usable location"), "url", url)
		}
		url = loc.String()
		resp, err = r.get(ctx, url)
		if err != nil {
			return "", err
		}
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := zerr.With(zerr.New("unexpected status fetching registry config"), "status_code", resp.StatusCode)
		return "", zerr.With(statusErr, "url", url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", zerr.Wrap(err, "failed to read registry config")
	}

	return parseConfig(body)
}

func (r *Resolver) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid registry config request"), "url", url)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "registry config request failed"), "url", url)
	}
	return resp, nil
}

// parseConfig extracts the dl field of a registry config document.
func parseConfig(body []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return "", zerr.Wrap(err, "registry config is not valid JSON")
	}
	if err := configSchema.Validate(doc); err != nil {
		return "", zerr.Wrap(err, "registry config does not match schema")
	}

	dl, _ := doc.(map[string]any)["dl"].(string)
	return strings.TrimSuffix(dl, "/"), nil
}

func isRedirect(code int) bool {
	return code >= 300 && code <= 399
}

func closeBody(resp *http.Response) {
	if closeErr := resp.Body.Close(); closeErr != nil {
		_ = closeErr
	}
}
