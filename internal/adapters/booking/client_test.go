package booking_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"home_card/internal/adapters/booking"
	"home_card/internal/domain"
)

func query() domain.SearchQuery {
	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	return domain.SearchQuery{DateFrom: from, DateTo: from.AddDate(0, 0, 7), Adults: 2, ChildrenAges: []int{5, 9}, Treatment: true}
}

func TestClient_Rooms_RetriesThenSuccess(t *testing.T) {
	homeID := uuid.New()
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/homes/"+homeID.String()+"/rooms" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("date_from") != "2026-07-01" || q.Get("date_to") != "2026-07-08" ||
			q.Get("adults") != "2" || q.Get("children") != "5,9" || q.Get("treatment") != "1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("missing api key")
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			w.WriteHeader(503)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"rooms":[{"id":"` + uuid.NewString() + `","name":"Lux","occupancy":3,
				"tariffs":[{"id":"` + uuid.NewString() + `","name":"Full board","price":"1250.50"}]}]}`))
		}
	}))
	defer ts.Close()

	cl, err := booking.New(ts.URL, "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rooms, err := cl.Rooms(ctx, homeID, query())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Occupancy != 3 || len(rooms[0].Tariffs) != 1 {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}
	if !rooms[0].Tariffs[0].Price.Equal(decimal.RequireFromString("1250.5")) {
		t.Fatalf("unexpected price: %s", rooms[0].Tariffs[0].Price)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_Rooms_404IsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := booking.New(ts.URL, "", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rooms, err := cl.Rooms(context.Background(), uuid.New(), query())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rooms == nil || len(rooms) != 0 {
		t.Fatalf("expected empty non-nil rooms, got %#v", rooms)
	}
}

func TestClient_Rooms_FailureIsStoreUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad dates"))
	}))
	defer ts.Close()

	cl, err := booking.New(ts.URL, "", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err = cl.Rooms(context.Background(), uuid.New(), query())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
