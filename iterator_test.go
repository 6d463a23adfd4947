package homegate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeResults(n int) []RealEstate {
	results := make([]RealEstate, n)
	for i := range results {
		id := strconv.Itoa(1000 + i)
		results[i] = RealEstate{ID: id, Listing: Listing{ID: id}}
	}
	return results
}

// pagingBackend serves slices of a fixed dataset according to the from/size
// of each incoming request and counts the requests it answered.
func pagingBackend(t *testing.T, dataset []RealEstate, maxFrom int, requests *atomic.Int32) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		end := min(req.From+req.Size, len(dataset))
		page := SearchResponse{
			From:    req.From,
			MaxFrom: maxFrom,
			Size:    req.Size,
			Total:   len(dataset),
		}
		if req.From < len(dataset) {
			page.Results = dataset[req.From:end]
		}

		require.NoError(t, json.NewEncoder(w).Encode(page))
	}
}

func pagingRequest(size int) *SearchRequest {
	req := DefaultSearchRequest()
	req.Query.Location = zurich()
	req.Size = size
	return req
}

func TestListingsDrainsAllPages(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, pagingBackend(t, fakeResults(5), 0, &requests))

	var ids []string
	for listing, err := range client.Listings(context.Background(), pagingRequest(2)) {
		require.NoError(t, err)
		ids = append(ids, listing.ID)
	}

	assert.Equal(t, []string{"1000", "1001", "1002", "1003", "1004"}, ids)
	assert.Equal(t, int32(3), requests.Load())
}

func TestListingsSinglePage(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, pagingBackend(t, fakeResults(3), 0, &requests))

	var count int
	for _, err := range client.Listings(context.Background(), pagingRequest(20)) {
		require.NoError(t, err)
		count++
	}

	assert.Equal(t, 3, count)
	assert.Equal(t, int32(1), requests.Load())
}

func TestListingsNoResults(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, pagingBackend(t, nil, 0, &requests))

	for _, err := range client.Listings(context.Background(), pagingRequest(20)) {
		require.NoError(t, err)
		t.Fatal("no results expected")
	}

	assert.Equal(t, int32(1), requests.Load())
}

// The backend caps how deep a query may paginate regardless of the total it
// reports. Iteration must respect the cap instead of collecting errors.
func TestListingsStopsAtMaxFrom(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, pagingBackend(t, fakeResults(10), 2, &requests))

	var count int
	for _, err := range client.Listings(context.Background(), pagingRequest(2)) {
		require.NoError(t, err)
		count++
	}

	assert.Equal(t, 4, count)
	assert.Equal(t, int32(2), requests.Load())
}

// Listings appear and disappear while paginating; the most recent total wins.
func TestListingsTrustsLatestTotal(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)

		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		// The dataset shrinks from 6 to 4 between the first and second page.
		total := 6
		if n > 1 {
			total = 4
		}
		results := fakeResults(total)

		end := min(req.From+req.Size, total)
		page := SearchResponse{From: req.From, Size: req.Size, Total: total}
		if req.From < total {
			page.Results = results[req.From:end]
		}
		require.NoError(t, json.NewEncoder(w).Encode(page))
	})

	var count int
	for _, err := range client.Listings(context.Background(), pagingRequest(2)) {
		require.NoError(t, err)
		count++
	}

	assert.Equal(t, 4, count)
	assert.Equal(t, int32(2), requests.Load())
}

// A backend that reports a large total but returns empty pages must not spin
// the iterator forever.
func TestListingsStopsOnEmptyPage(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, `{"from": 0, "total": 500, "results": []}`)
	})

	for _, err := range client.Listings(context.Background(), pagingRequest(20)) {
		require.NoError(t, err)
		t.Fatal("no results expected")
	}

	assert.Equal(t, int32(1), requests.Load())
}

func TestListingsEarlyBreakStopsFetching(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, pagingBackend(t, fakeResults(100), 0, &requests))

	for listing, err := range client.Listings(context.Background(), pagingRequest(2)) {
		require.NoError(t, err)
		if listing.ID == "1001" {
			break
		}
	}

	assert.Equal(t, int32(1), requests.Load())
}

func TestListingsYieldsErrorAndStops(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(SearchResponse{
			Total:   4,
			Results: fakeResults(2),
		}))
	})

	var ids []string
	var lastErr error
	for listing, err := range client.Listings(context.Background(), pagingRequest(2)) {
		if err != nil {
			lastErr = err
			continue
		}
		ids = append(ids, listing.ID)
	}

	assert.Equal(t, []string{"1000", "1001"}, ids)
	var httpErr *HTTPError
	require.ErrorAs(t, lastErr, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, int32(2), requests.Load())
}

func TestListingsDoesNotMutateRequest(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, pagingBackend(t, fakeResults(5), 0, &requests))

	req := pagingRequest(2)
	for _, err := range client.Listings(context.Background(), req) {
		require.NoError(t, err)
	}

	assert.Equal(t, 0, req.From)
}

func TestSearchAll(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, pagingBackend(t, fakeResults(7), 0, &requests))

	all, err := client.SearchAll(context.Background(), pagingRequest(3))
	require.NoError(t, err)

	assert.Len(t, all, 7)
	assert.Equal(t, "1006", all[6].ID)
	assert.Equal(t, int32(3), requests.Load())
}

func TestSearchAllPropagatesError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	all, err := client.SearchAll(context.Background(), pagingRequest(20))
	assert.Nil(t, all)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
}
