package mars

// EastToWest converts an east longitude to west longitude in [0, 360).
func EastToWest(east float64) float64 {
	return NormalizeAngle(360 - east)
}

// WestToEast converts a west longitude to east longitude in [0, 360).
func WestToEast(west float64) float64 {
	return EastToWest(west)
}

// Observer is a location on the Mars surface.
type Observer struct {
	LonEastDeg  float64 `json:"lon_east" yaml:"lon_east"`
	LatNorthDeg float64 `json:"lat_north" yaml:"lat_north"`
	Name        string  `json:"name,omitempty" yaml:"name,omitempty"`
}

// LonWestDeg returns the observer longitude in degrees west.
func (o Observer) LonWestDeg() float64 {
	return EastToWest(o.LonEastDeg)
}
