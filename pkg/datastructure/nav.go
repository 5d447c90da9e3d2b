package datastructure

// Coordinate. geographic coordinate in degrees
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// LatLonPair. [lat, lon] pair as the frontend draws it
func (c Coordinate) LatLonPair() [2]float64 {
	return [2]float64{c.Lat, c.Lon}
}
