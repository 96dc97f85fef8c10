package brands

import "strings"

// Registry is an ordered, immutable sequence of brands. Registration order
// is part of the resolution contract: when ZIP prefix lists overlap, the
// first-registered brand wins. The first entry is the default brand.
type Registry struct {
	brands []Brand
	byID   map[string]int
}

// NewRegistry builds a registry from an ordered brand list. The list must
// not be empty; its first entry becomes the default.
func NewRegistry(list []Brand) *Registry {
	if len(list) == 0 {
		panic("brands: registry requires at least one brand")
	}
	byID := make(map[string]int, len(list))
	for i, b := range list {
		byID[b.ID] = i
	}
	return &Registry{brands: list, byID: byID}
}

// DefaultRegistry returns the production brand table.
func DefaultRegistry() *Registry {
	return NewRegistry([]Brand{
		{
			ID:             "safehaven",
			Name:           "SafeHaven Security",
			ColorToken:     "blue",
			SecondaryColor: "slate",
			Phone:          "1-800-SAFE-HOME",
			States:         []string{"NC", "SC", "TN"},
			ZipPrefixes:    []string{"27", "28", "29", "37", "38"},
		},
		{
			ID:             "topsecurity",
			Name:           "TopSecurity",
			ColorToken:     "emerald",
			SecondaryColor: "gray",
			Phone:          "1-800-TOP-SECURE",
			States:         []string{"GA"},
			ZipPrefixes:    []string{"30", "31"},
		},
		{
			ID:             "bestsecurity",
			Name:           "BestSecurity",
			ColorToken:     "orange",
			SecondaryColor: "amber",
			Phone:          "1-800-BEST-SEC",
			States:         []string{"FL"},
			ZipPrefixes:    []string{"32", "33", "34"},
		},
		{
			ID:             "redhawk",
			Name:           "RedHawk Alarms",
			ColorToken:     "red",
			SecondaryColor: "rose",
			Phone:          "1-800-RED-HAWK",
			States:         []string{"AL"},
			ZipPrefixes:    []string{"35", "36"},
		},
	})
}

// All returns the brands in registration order.
func (r *Registry) All() []Brand {
	out := make([]Brand, len(r.brands))
	copy(out, r.brands)
	return out
}

// Default returns the default brand.
func (r *Registry) Default() Brand {
	return r.brands[0]
}

// ByID looks up a brand by id. Unknown ids return the default brand and
// ok=false so callers can reject them at the boundary.
func (r *Registry) ByID(id string) (Brand, bool) {
	if i, ok := r.byID[id]; ok {
		return r.brands[i], true
	}
	return r.Default(), false
}

// ResolveZip maps a postal code to a brand. The lookup is total and never
// fails: inputs shorter than two characters resolve to the default brand.
// The scan runs in registration order and returns the first brand whose
// prefix list matches the leading two characters of the input.
func (r *Registry) ResolveZip(raw string) Brand {
	zip := strings.TrimSpace(raw)
	if len(zip) < 2 {
		return r.Default()
	}
	prefix := zip[:2]
	for _, b := range r.brands {
		for _, p := range b.ZipPrefixes {
			if strings.HasPrefix(prefix, p) {
				return b
			}
		}
	}
	return r.Default()
}
