package main

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	homegate "github.com/mbeutler/homegate-go"
)

type rentKey struct {
	Locality string
	Rooms    float64
}

type rentStatRow struct {
	Locality   string
	Rooms      float64
	Listings   int
	MedianRent float64
}

// monthlyRent extracts the rent of a listing, preferring gross over net.
// Returns 0 when the listing carries no usable rent.
func monthlyRent(prices homegate.Prices) float64 {
	if prices.Rent == nil {
		return 0
	}

	if prices.Rent.Gross != nil {
		return float64(*prices.Rent.Gross)
	}

	if prices.Rent.Net != nil {
		return float64(*prices.Rent.Net)
	}

	return 0
}

// rentStatistics groups listings by locality and room count and computes the
// median rent per group. Listings without a locality or rent are skipped.
// Rows come back sorted by locality, then rooms, so exports are stable.
func rentStatistics(listings []homegate.RealEstate) []rentStatRow {
	grouped := make(map[rentKey][]float64)

	for _, result := range listings {
		rent := monthlyRent(result.Listing.Prices)
		if rent <= 0 {
			continue
		}

		locality := result.Listing.Address.Locality
		if locality == nil {
			continue
		}

		key := rentKey{
			Locality: *locality,
			Rooms:    result.Listing.Characteristics.NumberOfRooms,
		}

		grouped[key] = append(grouped[key], rent)
	}

	rows := make([]rentStatRow, 0, len(grouped))

	for key, rents := range grouped {
		sort.Float64s(rents)

		rows = append(rows, rentStatRow{
			Locality:   key.Locality,
			Rooms:      key.Rooms,
			Listings:   len(rents),
			MedianRent: stat.Quantile(0.5, stat.Empirical, rents, nil),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Locality != rows[j].Locality {
			return rows[i].Locality < rows[j].Locality
		}

		return rows[i].Rooms < rows[j].Rooms
	})

	return rows
}
