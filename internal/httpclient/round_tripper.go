// Package httpclient decorates HTTP transports.
package httpclient

import "net/http"

// SigningRoundTripper injects headers produced per request, so time-bound
// values like request signatures are fresh on every call instead of frozen
// at client construction.
type SigningRoundTripper struct {
	r       http.RoundTripper
	headers func() (http.Header, error)
}

func NewSigningRoundTripper(r http.RoundTripper, headers func() (http.Header, error)) *SigningRoundTripper {
	return &SigningRoundTripper{
		r:       r,
		headers: headers,
	}
}

func (rt *SigningRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	header, err := rt.headers()
	if err != nil {
		return nil, err
	}

	// Round trippers must not mutate the caller's request.
	r = r.Clone(r.Context())
	for k, vs := range header {
		for _, v := range vs {
			r.Header.Set(k, v)
		}
	}

	return rt.r.RoundTrip(r)
}
