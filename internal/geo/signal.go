package geo

import "time"

// Signal is a resolved location: the geographic evidence plus the brand it
// maps to. Signals are superseded on recompute, never merged.
type Signal struct {
	ZipCode         string       `json:"zip_code"`
	Coordinates     *Coordinates `json:"coordinates,omitempty"`
	DetectedBrandID string       `json:"detected_brand_id"`
	RegionLabel     string       `json:"region_label"`
	ResolvedAt      time.Time    `json:"resolved_at"`
}

// Fresh reports whether the signal was resolved within ttl of now.
func (s *Signal) Fresh(now time.Time, ttl time.Duration) bool {
	if s == nil || s.ResolvedAt.IsZero() {
		return false
	}
	return now.Sub(s.ResolvedAt) < ttl
}
