package homegate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mbeutler/homegate-go/internal/httpclient"
)

// Config controls how a Client is built. The zero value talks to the
// production backend with the current app release's signing material.
type Config struct {
	// BaseURL overrides the backend endpoint, mainly for tests.
	BaseURL string

	// HTTPClient supplies timeouts, proxies and the base transport. The
	// client keeps its own copy and wraps the transport with the signing
	// round tripper, the caller's client is not modified.
	HTTPClient *http.Client

	// Signer overrides the signing material.
	Signer *Signer

	// Logger receives request-level debug lines. Silent when nil.
	Logger logrus.FieldLogger
}

// Client talks to the listings backend. All methods are safe for concurrent
// use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	signer     *Signer
	log        logrus.FieldLogger
}

// NewClient builds a client. Every outgoing request is signed individually,
// because the X-App-Id header expires by the minute.
func NewClient(cfg Config) *Client {
	signer := cfg.Signer
	if signer == nil {
		signer = DefaultSigner()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		clone := *cfg.HTTPClient
		httpClient = &clone
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	httpClient.Transport = httpclient.NewSigningRoundTripper(base, signer.Headers)

	log := cfg.Logger
	if log == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		log = silent
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		signer:     signer,
		log:        log,
	}
}

// Search runs one page of a listings search. The request is normalized and
// validated locally first; the caller's request is not modified.
func (c *Client) Search(ctx context.Context, searchReq *SearchRequest) (*SearchResponse, error) {
	req := *searchReq
	req.Query.Categories = NormalizeCategories(req.Query.Categories)
	req.Query.ExcludeCategories = NormalizeCategories(req.Query.ExcludeCategories)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	reqBodyJSON, err := json.Marshal(&req)
	if err != nil {
		return nil, fmt.Errorf("can't marshal search request: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"from": req.From,
		"size": req.Size,
	}).Debug("searching listings")

	respBody, err := c.do(ctx, http.MethodPost, "/search/listings", reqBodyJSON)
	if err != nil {
		return nil, err
	}

	return ParseSearchResponse(respBody)
}

// GeoAreas returns the named geographic areas the backend can describe, with
// labels in the given language ("en", "de", "fr", "it"). An empty lang asks
// for English.
func (c *Client) GeoAreas(ctx context.Context, lang string) ([]GeoArea, error) {
	if lang == "" {
		lang = "en"
	}

	respBody, err := c.do(ctx, http.MethodGet, "/rs/geo-areas?lan="+url.QueryEscape(lang), nil)
	if err != nil {
		return nil, err
	}

	var areas []GeoArea
	if err := json.Unmarshal(respBody, &areas); err != nil {
		return nil, newSchemaError(err)
	}

	return areas, nil
}

// do sends one signed request and returns the body of a 2xx response.
// Anything else maps onto the error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("can't create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Signing failures travel through the round tripper; hand them
		// back undressed so callers can match the sentinels.
		if errors.Is(err, ErrMissingSecret) {
			return nil, ErrMissingSecret
		}
		if errors.Is(err, ErrClockUnavailable) {
			return nil, ErrClockUnavailable
		}
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: respBody}
	}

	return respBody, nil
}
