// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"home_card/internal/domain"
)

const (
	dateLayout    = "2006-01-02"
	sessionHeader = "X-Session-ID"
)

type CardBuilder interface {
	BuildBySerial(ctx context.Context, serial string, q domain.SearchQuery) (domain.PropertyView, error)
	BuildBySlug(ctx context.Context, slug string, q domain.SearchQuery) (domain.PropertyView, error)
}

type PriceResolver interface {
	ResolveForSession(ctx context.Context, sessionID string, productID uuid.UUID) (decimal.Decimal, error)
}

// ViewRecorder counts served cards.
type ViewRecorder interface {
	RecordView(ctx context.Context, homeID uuid.UUID) error
}

type Handlers struct {
	Cards  CardBuilder
	Prices PriceResolver
	Views  ViewRecorder // optional
	// Now anchors default search dates; nil means time.Now.
	Now func() time.Time
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type priceResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/homes/{serial}", h.getHome)
	s.mux.Get("/v1/homes/by-slug/{slug}", h.getHomeBySlug)
	s.mux.Get("/v1/products/{id}/price", h.getPrice)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps core errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		writeProblem(w, http.StatusBadRequest, "Invalid Query", err.Error())
	case errors.Is(err, domain.ErrDataIntegrity):
		log.Error().Err(err).Str("path", r.URL.Path).Msg("data integrity violation")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "inconsistent reference data")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("dependency unavailable")
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "try again later")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func (h *Handlers) getHome(w http.ResponseWriter, r *http.Request) {
	h.serveCard(w, r, h.Cards.BuildBySerial, chi.URLParam(r, "serial"))
}

func (h *Handlers) getHomeBySlug(w http.ResponseWriter, r *http.Request) {
	h.serveCard(w, r, h.Cards.BuildBySlug, chi.URLParam(r, "slug"))
}

type buildFunc func(ctx context.Context, key string, q domain.SearchQuery) (domain.PropertyView, error)

func (h *Handlers) serveCard(w http.ResponseWriter, r *http.Request, build buildFunc, key string) {
	q, err := h.searchQuery(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Query", err.Error())
		return
	}
	v, err := build(r.Context(), key, q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.recordView(r, v.ID)
	writeJSON(w, r, v)
}

// recordView never fails the request; a lost count only costs a warning.
func (h *Handlers) recordView(r *http.Request, homeID uuid.UUID) {
	if h.Views == nil {
		return
	}
	if err := h.Views.RecordView(r.Context(), homeID); err != nil {
		log.Warn().Err(err).Str("home_id", homeID.String()).Msg("view count not recorded")
	}
}

func (h *Handlers) getPrice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a UUID")
		return
	}
	price, err := h.Prices.ResolveForSession(r.Context(), r.Header.Get(sessionHeader), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// per-viewer prices must not be shared by caches
	w.Header().Set("Cache-Control", "private")
	w.Header().Set("Vary", sessionHeader)
	writeJSON(w, r, priceResponse{ProductID: id, Price: price})
}

// searchQuery reads the booking search from URL params. Missing dates default
// to a week starting tomorrow; missing adults default to two.
func (h *Handlers) searchQuery(r *http.Request) (domain.SearchQuery, error) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	y, m, d := now().UTC().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	p := r.URL.Query()
	q := domain.SearchQuery{DateFrom: from, DateTo: from.AddDate(0, 0, 7), Adults: 2}

	var err error
	if s := p.Get("date_from"); s != "" {
		if q.DateFrom, err = time.Parse(dateLayout, s); err != nil {
			return q, errors.New("date_from must be YYYY-MM-DD")
		}
		if p.Get("date_to") == "" {
			q.DateTo = q.DateFrom.AddDate(0, 0, 7)
		}
	}
	if s := p.Get("date_to"); s != "" {
		if q.DateTo, err = time.Parse(dateLayout, s); err != nil {
			return q, errors.New("date_to must be YYYY-MM-DD")
		}
	}
	if s := p.Get("adults"); s != "" {
		if q.Adults, err = strconv.Atoi(s); err != nil {
			return q, errors.New("adults must be an integer")
		}
	}
	if s := p.Get("children"); s != "" {
		for _, a := range strings.Split(s, ",") {
			age, err := strconv.Atoi(strings.TrimSpace(a))
			if err != nil {
				return q, errors.New("children must be a comma separated list of ages")
			}
			q.ChildrenAges = append(q.ChildrenAges, age)
		}
	}
	switch p.Get("treatment") {
	case "", "0", "false":
	case "1", "true":
		q.Treatment = true
	default:
		return q, errors.New("treatment must be a boolean")
	}
	q.RoomType = p.Get("room_type")
	return q, nil
}
