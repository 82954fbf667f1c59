package domain

import "fmt"

// GeoPoint is an immutable geographic point in decimal degrees (WGS-84).
type GeoPoint struct {
	Lon float64
	Lat float64
}

// ToList returns the point as [lon, lat] for external API compatibility.
func (p GeoPoint) ToList() []float64 { return []float64{p.Lon, p.Lat} }

// Validate reports whether the point lies within valid latitude/longitude ranges.
func (p GeoPoint) Validate() error {
	if !(p.Lat >= -90 && p.Lat <= 90) {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidPoint, p.Lat)
	}
	if !(p.Lon >= -180 && p.Lon <= 180) {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidPoint, p.Lon)
	}
	return nil
}
