package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"propwise/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so every vector has at least one series
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveCache("redis", "hit")
	observability.ObservePrediction()
	observability.ObserveChart("loc_avg.png", nil)
	observability.ObserveChart("bhk_avg.png", errors.New("boom"))
	observability.ObserveInquiry()

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"propwise_http_requests_total",
		"propwise_model_predictions_total",
		`propwise_chart_renders_total{chart="bhk_avg.png",result="error"}`,
		"propwise_inquiries_total",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}
