package homegate

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A box around the Zürich city center, roughly 8 by 11 kilometers.
const zurichBoxGeoJSON = `{
	"type": "Polygon",
	"coordinates": [[
		[8.5, 47.3],
		[8.6, 47.3],
		[8.6, 47.4],
		[8.5, 47.4],
		[8.5, 47.3]
	]]
}`

func listingAt(id string, lat, lon float64) RealEstate {
	return RealEstate{
		ID: id,
		Listing: Listing{
			ID: id,
			Address: Address{
				GeoCoordinates: &GeoCoords{Latitude: lat, Longitude: lon},
			},
		},
	}
}

func TestSearchArea(t *testing.T) {
	noCoords := RealEstate{ID: "no-coords", Listing: Listing{ID: "no-coords"}}

	// Every covering circle reports the same four listings, as overlapping
	// circles around a dense area would.
	cellPage := SearchResponse{
		Total: 4,
		Results: []RealEstate{
			listingAt("inside-1", 47.35, 8.55),
			listingAt("inside-2", 47.39, 8.51),
			listingAt("outside", 47.5, 8.55),
			noCoords,
		},
	}

	var requests atomic.Int32
	var mu sync.Mutex
	var locations []Location

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		mu.Lock()
		locations = append(locations, req.Query.Location)
		mu.Unlock()

		// Cell queries carry the caller's filters.
		require.NotNil(t, req.Query.MonthlyRent.To)
		assert.Equal(t, 2500, *req.Query.MonthlyRent.To)

		require.NoError(t, json.NewEncoder(w).Encode(cellPage))
	})

	req := DefaultSearchRequest()
	req.Query.MonthlyRent = FromTo{To: Int(2500)}

	results, err := client.SearchArea(context.Background(), zurichBoxGeoJSON, req, AreaSearchOptions{
		MaxWorkers: 2,
	})
	require.NoError(t, err)

	var ids []string
	for _, re := range results {
		ids = append(ids, re.ID)
	}
	assert.Equal(t, []string{"inside-1", "inside-2", "no-coords"}, ids)

	// One query per covering circle, each with its own center and a radius
	// the backend accepts.
	assert.Equal(t, int(requests.Load()), len(locations))
	assert.Greater(t, len(locations), 1)
	for _, loc := range locations {
		assert.InDelta(t, 47.35, loc.Latitude, 0.1)
		assert.InDelta(t, 8.55, loc.Longitude, 0.1)
		assert.Greater(t, loc.Radius, 0)
		assert.Less(t, loc.Radius, maxRadiusMeters)
	}
}

func TestSearchAreaProgress(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":0,"results":[]}`))
	})

	var mu sync.Mutex
	var currents []int
	var total int

	_, err := client.SearchArea(context.Background(), zurichBoxGeoJSON, DefaultSearchRequest(), AreaSearchOptions{
		OnProgress: func(current, totalCells int) {
			mu.Lock()
			currents = append(currents, current)
			total = totalCells
			mu.Unlock()
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, currents)
	assert.Len(t, currents, total)
	assert.Contains(t, currents, total)
}

func TestSearchAreaRejectsOversizedCells(t *testing.T) {
	// Most of Switzerland. Cells this size circumscribe circles far beyond
	// what the backend accepts.
	switzerland := `{
		"type": "Polygon",
		"coordinates": [[
			[6.0, 46.0],
			[10.0, 46.0],
			[10.0, 47.8],
			[6.0, 47.8],
			[6.0, 46.0]
		]]
	}`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no cell query expected")
	})

	_, err := client.SearchArea(context.Background(), switzerland, DefaultSearchRequest(), AreaSearchOptions{
		CellSizeMeters: 300000,
	})

	var queryErr *InvalidQueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "query.location.radius", queryErr.Field)
}

func TestSearchAreaRejectsDegenerateGeometry(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no cell query expected")
	})

	point := `{"type": "Point", "coordinates": [8.55, 47.35]}`

	_, err := client.SearchArea(context.Background(), point, DefaultSearchRequest(), AreaSearchOptions{})

	var queryErr *InvalidQueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "area", queryErr.Field)
}

func TestSearchAreaBadGeoJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no cell query expected")
	})

	_, err := client.SearchArea(context.Background(), `{"type": "Nonsense"}`, DefaultSearchRequest(), AreaSearchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't parse search area")
}

func TestSearchAreaPropagatesCellErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.SearchArea(context.Background(), zurichBoxGeoJSON, DefaultSearchRequest(), AreaSearchOptions{})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
}
