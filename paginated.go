package homegate

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SearchResponse is one page of search results. MaxFrom is the highest
// offset the backend will serve for this query, which can be lower than
// Total suggests.
type SearchResponse struct {
	From    int          `json:"from"`
	MaxFrom int          `json:"maxFrom"`
	Results []RealEstate `json:"results"`
	Size    int          `json:"size"`
	Total   int          `json:"total"`
}

// ParseSearchResponse decodes a search response body and checks the
// invariants the rest of the package relies on: the body is a result page
// and every result carries a non-empty id at both levels. A violation
// anywhere fails the whole parse.
func ParseSearchResponse(data []byte) (*SearchResponse, error) {
	var result SearchResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, newSchemaError(err)
	}

	for i, re := range result.Results {
		if re.ID == "" {
			return nil, &SchemaError{
				Path: fmt.Sprintf("results[%d].id", i),
				Err:  errors.New("missing or empty id"),
			}
		}
		if re.Listing.ID == "" {
			return nil, &SchemaError{
				Path: fmt.Sprintf("results[%d].listing.id", i),
				Err:  errors.New("missing or empty id"),
			}
		}
	}

	return &result, nil
}

// newSchemaError turns a json decode error into a SchemaError with the most
// precise path the decoder can give.
func newSchemaError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &SchemaError{Path: typeErr.Field, Err: err}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &SchemaError{Path: fmt.Sprintf("byte offset %d", syntaxErr.Offset), Err: err}
	}

	return &SchemaError{Path: "$", Err: err}
}
