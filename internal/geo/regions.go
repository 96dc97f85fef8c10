package geo

// regionBucket is a rectangular bounding box with a representative postal
// code. The table is intentionally coarse: it only needs to land the visitor
// in the right brand territory, not geocode them.
type regionBucket struct {
	LatMin, LatMax float64
	LngMin, LngMax float64
	Zip            string
}

// Buckets are checked in order; the first containing box wins. Boxes are
// allowed to touch, so order is part of the contract.
var regionBuckets = []regionBucket{
	{LatMin: 36, LatMax: 40, LngMin: -84, LngMax: -80, Zip: "27701"}, // NC
	{LatMin: 32, LatMax: 36, LngMin: -84, LngMax: -78, Zip: "29201"}, // SC
	{LatMin: 35, LatMax: 37, LngMin: -91, LngMax: -81, Zip: "37201"}, // TN
	{LatMin: 30, LatMax: 35, LngMin: -86, LngMax: -80, Zip: "30301"}, // GA
	{LatMin: 24, LatMax: 31, LngMin: -88, LngMax: -79, Zip: "32801"}, // FL
	{LatMin: 30, LatMax: 36, LngMin: -89, LngMax: -84, Zip: "35201"}, // AL
}

// defaultBucketZip applies when no box contains the point.
const defaultBucketZip = "27701"

func (b regionBucket) contains(c Coordinates) bool {
	return c.Lat >= b.LatMin && c.Lat <= b.LatMax &&
		c.Lng >= b.LngMin && c.Lng <= b.LngMax
}

// zipForCoordinates maps coordinates to the representative postal code of
// the first containing region bucket.
func zipForCoordinates(c Coordinates) string {
	for _, b := range regionBuckets {
		if b.contains(c) {
			return b.Zip
		}
	}
	return defaultBucketZip
}
