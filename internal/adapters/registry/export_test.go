package registry

import "net/http"

// NewResolverWithClient exports newResolverWithClient for testing.
func NewResolverWithClient(root, userAgent string, client *http.Client) *Resolver {
	return newResolverWithClient(root, userAgent, client)
}

// ParseConfig exports parseConfig for testing.
var ParseConfig = parseConfig
