package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	homegate "github.com/mbeutler/homegate-go"
)

const maxBodyBytes = 1 << 20

// Handler serves the façade endpoints on top of a listings client.
type Handler struct {
	client *homegate.Client
	log    logrus.FieldLogger
}

func NewHandler(client *homegate.Client, log logrus.FieldLogger) *Handler {
	return &Handler{client: client, log: log}
}

// apiError is the JSON error envelope. Layer names which part of the
// upstream exchange failed on 502 responses.
type apiError struct {
	Error          string `json:"error"`
	Path           string `json:"path,omitempty"`
	Field          string `json:"field,omitempty"`
	Layer          string `json:"layer,omitempty"`
	UpstreamStatus int    `json:"upstreamStatus,omitempty"`
}

// Search runs one page of a listings search. The body carries the public
// query surface; wire-contract boilerplate is filled in server-side.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.respond(w, http.StatusBadRequest, apiError{Error: "can't read request body"})
		return
	}

	if err := validateSearchBody(body); err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			h.respond(w, http.StatusBadRequest, apiError{Error: reqErr.Message, Path: reqErr.Path})
			return
		}
		h.respond(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}

	req := homegate.DefaultSearchRequest()
	if err := json.Unmarshal(body, req); err != nil {
		h.respond(w, http.StatusBadRequest, apiError{Error: "can't decode request body"})
		return
	}

	start := time.Now()
	page, err := h.client.Search(r.Context(), req)
	observeBackend("search", time.Since(start).Seconds())
	if err != nil {
		h.writeClientError(w, r, err)
		return
	}

	h.respond(w, http.StatusOK, page)
}

// Areas lists the named geographic areas the backend knows.
func (h *Handler) Areas(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")

	start := time.Now()
	areas, err := h.client.GeoAreas(r.Context(), lang)
	observeBackend("geo_areas", time.Since(start).Seconds())
	if err != nil {
		h.writeClientError(w, r, err)
		return
	}

	h.respond(w, http.StatusOK, areas)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeClientError maps the client error taxonomy onto HTTP responses:
// local validation problems are the caller's fault, everything upstream is
// a gateway failure naming the broken layer.
func (h *Handler) writeClientError(w http.ResponseWriter, r *http.Request, err error) {
	log := h.log.WithFields(logrus.Fields{
		"request_id": requestIDFrom(r.Context()),
	})

	var queryErr *homegate.InvalidQueryError
	if errors.As(err, &queryErr) {
		h.respond(w, http.StatusBadRequest, apiError{Error: queryErr.Reason, Field: queryErr.Field})
		return
	}

	var httpErr *homegate.HTTPError
	if errors.As(err, &httpErr) {
		log.WithField("upstream_status", httpErr.StatusCode).Warn("backend rejected request")
		h.respond(w, http.StatusBadGateway, apiError{
			Error:          "backend rejected the request",
			Layer:          "http",
			UpstreamStatus: httpErr.StatusCode,
		})
		return
	}

	var schemaErr *homegate.SchemaError
	if errors.As(err, &schemaErr) {
		log.WithField("path", schemaErr.Path).Error("backend sent malformed response")
		h.respond(w, http.StatusBadGateway, apiError{Error: "backend sent a malformed response", Layer: "schema"})
		return
	}

	if errors.Is(err, homegate.ErrMissingSecret) || errors.Is(err, homegate.ErrClockUnavailable) {
		log.WithError(err).Error("signing unavailable")
		h.respond(w, http.StatusBadGateway, apiError{Error: "can't sign backend request", Layer: "auth"})
		return
	}

	var transportErr *homegate.TransportError
	if errors.As(err, &transportErr) {
		log.WithError(err).Error("backend unreachable")
		h.respond(w, http.StatusBadGateway, apiError{Error: "backend unreachable", Layer: "transport"})
		return
	}

	log.WithError(err).Error("search failed")
	h.respond(w, http.StatusInternalServerError, apiError{Error: "internal error"})
}

func (h *Handler) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Error("can't write response")
	}
}
