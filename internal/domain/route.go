package domain

// Route is an ordered polyline of points along a traveled path.
// Order is geographic order along the path and is significant.
type Route []GeoPoint

// StopKind names the kind of synthetic event inserted along a trip.
type StopKind string

const (
	StopFueling StopKind = "Fueling"
	StopDriving StopKind = "Driving"
)

// StopMarker is an immutable point of interest on a route.
// It carries no reference back to the Route it was derived from.
type StopMarker struct {
	Position GeoPoint
	Kind     StopKind
}
