package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"home_card/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	observability.ObserveHTTP("/v1/homes/{serial}", "GET", 200, 12*time.Millisecond)
	observability.ObserveCardBuild(nil, 30*time.Millisecond)
	observability.ObserveCardPartFailure("weather")
	observability.ObservePrice("partner", errors.New("boom"))

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"homecard_http_requests_total",
		`homecard_card_build_duration_seconds_count{outcome="ok"}`,
		`homecard_card_part_failures_total{part="weather"}`,
		`homecard_price_resolutions_total{outcome="error",viewer="partner"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}
