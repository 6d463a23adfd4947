package homegate

import (
	"context"
	"iter"
)

// Listings returns a lazy sequence over every result matching the request,
// fetching pages on demand as the caller advances. The caller's request is
// not modified; iteration starts at its From offset.
//
// The sequence ends when a page comes back empty, when the most recently
// reported total is reached, or when the backend's maximum offset would be
// exceeded. The total can drift while iterating as listings appear and
// disappear; the latest page's word is trusted. On error the sequence yields
// the error once and stops.
//
// Breaking out of the loop early stops further requests:
//
//	for listing, err := range client.Listings(ctx, req) {
//		if err != nil {
//			return err
//		}
//		if enough(listing) {
//			break
//		}
//	}
func (c *Client) Listings(ctx context.Context, searchReq *SearchRequest) iter.Seq2[RealEstate, error] {
	return func(yield func(RealEstate, error) bool) {
		pageReq := *searchReq

		for {
			page, err := c.Search(ctx, &pageReq)
			if err != nil {
				yield(RealEstate{}, err)
				return
			}

			for _, result := range page.Results {
				if !yield(result, nil) {
					return
				}
			}

			if len(page.Results) == 0 {
				return
			}

			next := pageReq.From + len(page.Results)
			if next >= page.Total {
				return
			}
			// MaxFrom is zero when the backend does not cap this query.
			if page.MaxFrom > 0 && next > page.MaxFrom {
				return
			}

			pageReq.From = next
		}
	}
}

// SearchAll drains Listings into a slice. Mind the result size on broad
// queries; the lazy form exists for a reason.
func (c *Client) SearchAll(ctx context.Context, searchReq *SearchRequest) ([]RealEstate, error) {
	var all []RealEstate
	for listing, err := range c.Listings(ctx, searchReq) {
		if err != nil {
			return nil, err
		}
		all = append(all, listing)
	}
	return all, nil
}
