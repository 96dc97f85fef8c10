// Package geo resolves a device location signal to a regional brand. The
// device query itself is a capability the host platform provides; everything
// downstream (region bucketing, brand resolution, caching) is deterministic.
package geo

import (
	"context"
	"errors"
)

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoordinateProvider answers a device-location query. Implementations may
// block until the platform responds; the resolver bounds the wait.
type CoordinateProvider interface {
	Coordinates(ctx context.Context) (Coordinates, error)
}

// ErrPermissionDenied is returned by providers when the user refused the
// location prompt.
var ErrPermissionDenied = errors.New("geo: location permission denied")

// ErrUnavailable is returned by providers when the platform has no
// geolocation capability.
var ErrUnavailable = errors.New("geo: location unavailable")

// StaticProvider returns fixed coordinates; used for request-supplied
// positions and in tests.
type StaticProvider struct {
	Coords Coordinates
	Err    error
}

// Coordinates implements CoordinateProvider.
func (p StaticProvider) Coordinates(ctx context.Context) (Coordinates, error) {
	if p.Err != nil {
		return Coordinates{}, p.Err
	}
	return p.Coords, nil
}
