package homegate

import (
	"context"
	"fmt"
	"math"

	"github.com/mbeutler/homegate-go/internal/geo"
	"github.com/mbeutler/homegate-go/internal/utils"
)

// AreaSearchOptions tunes a polygon sweep.
type AreaSearchOptions struct {
	// CellSizeMeters is the grid cell edge used to cover the polygon.
	// Smaller cells mean more, narrower queries. Defaults to 5000.
	CellSizeMeters float64

	// MaxWorkers bounds how many cells are queried concurrently.
	// Defaults to 4.
	MaxWorkers int

	// OnProgress, when set, is called after each finished cell with the
	// number of cells done and the cell total.
	OnProgress func(current, total int)
}

// SearchArea runs the search over an arbitrary area given as a GeoJSON
// geometry document. The backend only takes circular search areas, so the
// polygon is covered with overlapping circles, every circle is paged through
// completely, and the merged results are deduplicated and filtered back down
// to the polygon.
//
// The Location in searchReq is ignored; everything else (filters, size,
// sorting) applies to each cell query. Results whose listing carries no
// coordinates are kept: they matched a covering circle and cannot be proven
// to lie outside.
func (c *Client) SearchArea(ctx context.Context, geojson string, searchReq *SearchRequest, opts AreaSearchOptions) ([]RealEstate, error) {
	cellSize := opts.CellSizeMeters
	if cellSize <= 0 {
		cellSize = 5000
	}
	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	polygon, err := geo.ParsePolygon(geojson)
	if err != nil {
		return nil, fmt.Errorf("can't parse search area: %w", err)
	}

	circles, err := geo.CoverPolygon(geojson, cellSize)
	if err != nil {
		return nil, fmt.Errorf("can't cover search area: %w", err)
	}
	if len(circles) == 0 {
		return nil, &InvalidQueryError{Field: "area", Reason: "has no extent"}
	}

	for _, circle := range circles {
		if int(math.Ceil(circle.Radius)) >= maxRadiusMeters {
			return nil, &InvalidQueryError{
				Field:  "query.location.radius",
				Reason: fmt.Sprintf("cell size %v produces circles of %v meters, the backend caps the radius below %d", cellSize, circle.Radius, maxRadiusMeters),
			}
		}
	}

	pool := utils.NewWorkerPool(func(ctx context.Context, circle geo.Circle) ([]RealEstate, error) {
		cellReq := *searchReq
		cellReq.Query.Location = Location{
			Latitude:  circle.Center.Lat(),
			Longitude: circle.Center.Lon(),
			Radius:    int(math.Ceil(circle.Radius)),
		}
		return c.SearchAll(ctx, &cellReq)
	}, maxWorkers)

	if opts.OnProgress != nil {
		pool.OnProgress(opts.OnProgress)
	}

	cellResults, err := pool.Map(ctx, circles)
	if err != nil {
		return nil, fmt.Errorf("can't sweep search area: %w", err)
	}

	merged := make([]RealEstate, 0)
	for _, results := range cellResults {
		merged = append(merged, results...)
	}

	merged = utils.DedupBy(merged, func(re RealEstate) string {
		return re.ID
	})

	// Covering circles stick out beyond the polygon; drop what they
	// dragged in.
	inside := merged[:0]
	for _, re := range merged {
		coords := re.Listing.Address.GeoCoordinates
		if coords != nil && !polygon.Contains(coords.Longitude, coords.Latitude) {
			continue
		}
		inside = append(inside, re)
	}

	return inside, nil
}
