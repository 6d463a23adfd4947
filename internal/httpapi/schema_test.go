package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSearchBody(t *testing.T) {
	valid := `{
		"query": {
			"location": {"latitude": 47.36, "longitude": 8.55, "radius": 1000},
			"monthlyRent": {"from": 1000, "to": 2500},
			"categories": ["FLAT", "ATTIC_FLAT"]
		},
		"size": 20,
		"from": 0
	}`

	assert.NoError(t, validateSearchBody([]byte(valid)))
}

func TestValidateSearchBodyViolations(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantPath string
	}{
		{
			name:     "missing query",
			body:     `{"size": 20}`,
			wantPath: "/",
		},
		{
			name:     "missing location",
			body:     `{"query": {}}`,
			wantPath: "/query",
		},
		{
			name:     "latitude out of range",
			body:     `{"query": {"location": {"latitude": 91, "longitude": 8.55, "radius": 1000}}}`,
			wantPath: "/query/location/latitude",
		},
		{
			name:     "radius above cap",
			body:     `{"query": {"location": {"latitude": 47.36, "longitude": 8.55, "radius": 50000}}}`,
			wantPath: "/query/location/radius",
		},
		{
			name:     "lowercase category",
			body:     `{"query": {"location": {"latitude": 47.36, "longitude": 8.55, "radius": 1000}, "categories": ["flat"]}}`,
			wantPath: "/query/categories/0",
		},
		{
			name:     "negative size",
			body:     `{"query": {"location": {"latitude": 47.36, "longitude": 8.55, "radius": 1000}}, "size": -1}`,
			wantPath: "/size",
		},
		{
			name:     "unknown top-level field",
			body:     `{"query": {"location": {"latitude": 47.36, "longitude": 8.55, "radius": 1000}}, "resultTemplate": {}}`,
			wantPath: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSearchBody([]byte(tt.body))

			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.wantPath, reqErr.Path)
			assert.NotEmpty(t, reqErr.Message)
		})
	}
}

func TestValidateSearchBodyMalformedJSON(t *testing.T) {
	err := validateSearchBody([]byte(`{"query":`))

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Message, "not valid JSON")
}
