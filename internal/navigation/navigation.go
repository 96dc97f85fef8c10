// Package navigation computes brand-scoped URLs. Both user-initiated brand
// switches and geolocation-triggered redirects go through this single
// resolver so attribution parameters survive every transition.
package navigation

import (
	"net/url"
	"strings"

	"github.com/safehaven/brandsite/internal/brands"
)

// Resolver builds brand paths and canonical URLs against the registry.
type Resolver struct {
	registry *brands.Registry
}

// NewResolver creates a navigation resolver.
func NewResolver(registry *brands.Registry) *Resolver {
	if registry == nil {
		panic("navigation: registry required")
	}
	return &Resolver{registry: registry}
}

// BrandPath returns the base path for a brand: the default brand lives at
// the root, every other brand at /<id>.
func (r *Resolver) BrandPath(b brands.Brand) string {
	if b.ID == r.registry.Default().ID {
		return "/"
	}
	return "/" + b.ID
}

// BuildBrandURL returns the path for a brand. When preserve is true the
// given query string is appended unchanged, keeping attribution intact.
func (r *Resolver) BuildBrandURL(b brands.Brand, query url.Values, preserve bool) string {
	base := r.BrandPath(b)
	if !preserve {
		return base
	}
	qs := query.Encode()
	if qs == "" {
		return base
	}
	return base + "?" + qs
}

// CanonicalURL returns the absolute canonical URL for a brand.
func (r *Resolver) CanonicalURL(baseURL string, b brands.Brand) string {
	base := strings.TrimRight(baseURL, "/")
	if b.ID == r.registry.Default().ID {
		return base
	}
	return base + "/" + b.ID
}

// ExtractBrandID maps a request path to a brand id. The root resolves to
// the default brand; an unknown first segment is rejected rather than
// silently mapped.
func (r *Resolver) ExtractBrandID(path string) (string, bool) {
	if path == "/" || path == "" {
		return r.registry.Default().ID, true
	}
	segments := strings.FieldsFunc(path, func(c rune) bool { return c == '/' })
	if len(segments) == 0 {
		return r.registry.Default().ID, true
	}
	if b, ok := r.registry.ByID(segments[0]); ok {
		return b.ID, true
	}
	return "", false
}
