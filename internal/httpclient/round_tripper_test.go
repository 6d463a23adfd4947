package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport captures the request it is handed instead of dialing.
type recordingTransport struct {
	req *http.Request
}

func (rt *recordingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	rt.req = r
	return &http.Response{StatusCode: http.StatusOK, Request: r}, nil
}

func TestSigningRoundTripperSetsHeaders(t *testing.T) {
	recorder := &recordingTransport{}
	rt := NewSigningRoundTripper(recorder, func() (http.Header, error) {
		h := http.Header{}
		h.Set("X-App-Id", "12345")
		h.Set("User-Agent", "test agent")
		return h, nil
	})

	req, err := http.NewRequest(http.MethodGet, "http://backend.invalid/", nil)
	require.NoError(t, err)

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, recorder.req)
	assert.Equal(t, "12345", recorder.req.Header.Get("X-App-Id"))
	assert.Equal(t, "test agent", recorder.req.Header.Get("User-Agent"))
}

func TestSigningRoundTripperLeavesCallerRequestAlone(t *testing.T) {
	recorder := &recordingTransport{}
	rt := NewSigningRoundTripper(recorder, func() (http.Header, error) {
		h := http.Header{}
		h.Set("X-App-Id", "12345")
		return h, nil
	})

	req, err := http.NewRequest(http.MethodGet, "http://backend.invalid/", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	require.NoError(t, err)

	assert.Empty(t, req.Header.Get("X-App-Id"))
	assert.NotSame(t, req, recorder.req)
}

func TestSigningRoundTripperFreshHeadersPerRequest(t *testing.T) {
	recorder := &recordingTransport{}
	calls := 0
	rt := NewSigningRoundTripper(recorder, func() (http.Header, error) {
		calls++
		h := http.Header{}
		h.Set("X-App-Id", strconv.Itoa(calls))
		return h, nil
	})

	for want := 1; want <= 3; want++ {
		req, err := http.NewRequest(http.MethodGet, "http://backend.invalid/", nil)
		require.NoError(t, err)

		_, err = rt.RoundTrip(req)
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(want), recorder.req.Header.Get("X-App-Id"))
	}
}

func TestSigningRoundTripperPropagatesHeaderError(t *testing.T) {
	wantErr := errors.New("no signing material")
	rt := NewSigningRoundTripper(&recordingTransport{}, func() (http.Header, error) {
		return nil, wantErr
	})

	req, err := http.NewRequest(http.MethodGet, "http://backend.invalid/", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	assert.ErrorIs(t, err, wantErr)
}

// Sentinel errors handed to http.Client get wrapped in url.Error; callers
// rely on errors.Is still finding them.
func TestSigningRoundTripperErrorSurvivesClient(t *testing.T) {
	wantErr := errors.New("no signing material")
	client := &http.Client{
		Transport: NewSigningRoundTripper(http.DefaultTransport, func() (http.Header, error) {
			return nil, fmt.Errorf("signing: %w", wantErr)
		}),
	}

	_, err := client.Get("http://backend.invalid/")
	assert.ErrorIs(t, err, wantErr)
}
