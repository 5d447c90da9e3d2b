package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/wroge/wgs84"
)

var (
	ErrInvalidUTMZone   = errors.New("utm zone must be in [1,60]")
	ErrLatitudeOutOfUTM = errors.New("latitude outside the utm band [-80,84]")
)

// Projector converts between WGS84 lat/lon and one fixed UTM zone (meters), e.g. zone 51 north is EPSG:32651.
// the zone is fixed so every node of the road network shares one plane, even near zone edges.
type Projector struct {
	zone     int
	northern bool
	forward  wgs84.Func
	inverse  wgs84.Func
}

func NewProjector(zone int, northern bool) (*Projector, error) {
	if zone < 1 || zone > 60 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidUTMZone, zone)
	}
	utm := wgs84.UTM(float64(zone), northern)
	return &Projector{
		zone:     zone,
		northern: northern,
		forward:  wgs84.LonLat().To(utm),
		inverse:  utm.To(wgs84.LonLat()),
	}, nil
}

// EPSG. code of the projected CRS
func (p *Projector) EPSG() int {
	if p.northern {
		return 32600 + p.zone
	}
	return 32700 + p.zone
}

// ToPlanar projects (lat, lon) degrees to (easting, northing) meters.
func (p *Projector) ToPlanar(lat, lon float64) (float64, float64, error) {
	if lat < -80 || lat > 84 || math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, 0, fmt.Errorf("%w: %v", ErrLatitudeOutOfUTM, lat)
	}
	x, y, _ := p.forward(lon, lat, 0)
	return x, y, nil
}

// ToGeographic is the inverse of ToPlanar, returning (lat, lon) degrees.
func (p *Projector) ToGeographic(x, y float64) (float64, float64) {
	lon, lat, _ := p.inverse(x, y, 0)
	return lat, lon
}
