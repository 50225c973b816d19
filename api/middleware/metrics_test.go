package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/storelane/storelane-backend/pkg/metrics"
)

func TestMetricsRecordsRoutePattern(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewRequestMetrics(registry)

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/v1/stores/{storeID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores/ABCD2345", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, family := range families {
		if family.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "route" && label.GetValue() == "/api/v1/stores/{storeID}" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Fatalf("expected request counter labelled with the chi route pattern")
	}
}

func TestMetricsNilCollectorPassesThrough(t *testing.T) {
	handler := Metrics(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
}
