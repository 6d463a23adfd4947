// Package geo turns GeoJSON search areas into shapes the listings backend
// understands. The backend only accepts circular areas with a bounded
// radius, so arbitrary polygons are approximated by a set of circles.
package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/twpayne/go-geos"
)

// Circle is a circular search area: a WGS84 center and a radius in ground
// meters.
type Circle struct {
	Center orb.Point
	Radius float64
}

// CoverPolygon returns circles that jointly cover the geometry in the given
// GeoJSON document. The geometry's bounding box is cut into a Mercator grid
// of cells at most cellSize meters per side; every cell touching the
// geometry becomes a circle around the cell center, wide enough to reach the
// cell corners.
func CoverPolygon(geojson string, cellSize float64) ([]Circle, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %v", cellSize)
	}

	geom, err := geos.NewGeomFromGeoJSON(geojson)
	if err != nil {
		return nil, fmt.Errorf("can't parse geojson: %w", err)
	}

	return coverGeom(geom, cellSize), nil
}

func coverGeom(geom *geos.Geom, cellSize float64) []Circle {
	bounds4326 := geom.Bounds()
	bounds3857 := reprojectBounds(bounds4326, project.WGS84.ToMercator)

	height := bounds3857.MaxY - bounds3857.MinY
	width := bounds3857.MaxX - bounds3857.MinX

	stepy := cellSize
	if height > 0 {
		stepy = height / math.Ceil(height/cellSize)
	}
	stepx := cellSize
	if width > 0 {
		stepx = width / math.Ceil(width/cellSize)
	}

	circles := make([]Circle, 0)

	y1 := bounds3857.MaxY
	for y1 > bounds3857.MinY {
		y2 := y1 - stepy
		if y2 < bounds3857.MinY {
			y2 = bounds3857.MinY
		}

		x1 := bounds3857.MinX
		for x1 < bounds3857.MaxX {
			x2 := x1 + stepx
			if x2 > bounds3857.MaxX {
				x2 = bounds3857.MaxX
			}

			cell4326 := reprojectBounds(geos.NewBounds(x1, y2, x2, y1), project.Mercator.ToWGS84)
			if cell4326.Geom().Intersects(geom) {
				circles = append(circles, cellCircle(x1, y2, x2, y1))
			}

			x1 = x2
		}

		y1 = y2
	}

	return circles
}

// cellCircle circumscribes a Mercator cell. Mercator meters are stretched by
// 1/cos(lat), so the circumradius is scaled back to ground meters at the
// cell center's latitude.
func cellCircle(minX, minY, maxX, maxY float64) Circle {
	center := project.Mercator.ToWGS84(orb.Point{(minX + maxX) / 2, (minY + maxY) / 2})

	halfDiagonal := math.Hypot(maxX-minX, maxY-minY) / 2
	radius := halfDiagonal * math.Cos(center.Lat()*math.Pi/180)

	return Circle{Center: center, Radius: radius}
}

// Polygon is a parsed GeoJSON geometry for point-membership tests.
type Polygon struct {
	geom *geos.Geom
}

// ParsePolygon parses a GeoJSON geometry document.
func ParsePolygon(geojson string) (*Polygon, error) {
	geom, err := geos.NewGeomFromGeoJSON(geojson)
	if err != nil {
		return nil, fmt.Errorf("can't parse geojson: %w", err)
	}

	return &Polygon{geom: geom}, nil
}

// Contains reports whether the WGS84 point lies inside the geometry,
// boundary included.
func (p *Polygon) Contains(lon, lat float64) bool {
	// A degenerate bounds is the cheapest way to a point geometry here.
	point := geos.NewBounds(lon, lat, lon, lat).Geom()
	return point.Intersects(p.geom)
}

func geosBoundsToOrbBound(bounds *geos.Bounds) orb.Bound {
	return orb.Bound{
		Min: orb.Point{bounds.MinX, bounds.MinY},
		Max: orb.Point{bounds.MaxX, bounds.MaxY},
	}
}

func orbBoundToGeosBounds(bound orb.Bound) *geos.Bounds {
	return geos.NewBounds(bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1])
}

func reprojectBounds(bounds *geos.Bounds, projection orb.Projection) *geos.Bounds {
	return orbBoundToGeosBounds(project.Bound(geosBoundsToOrbBound(bounds), projection))
}
