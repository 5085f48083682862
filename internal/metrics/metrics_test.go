package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSearch(t *testing.T) {
	m := New()

	m.ObserveSearch("uv", OutcomeOK, 5*time.Millisecond, 3)
	m.ObserveSearch("uv", OutcomeOK, time.Millisecond, 1)
	m.ObserveSearch("", OutcomeNoResults, time.Millisecond, 0)
	m.ObserveSearch("pip", OutcomeFailed, time.Millisecond, 0)

	if got := testutil.ToFloat64(m.searchesTotal.WithLabelValues("uv", OutcomeOK)); got != 2 {
		t.Errorf("uv/ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.searchesTotal.WithLabelValues(NoFilter, OutcomeNoResults)); got != 1 {
		t.Errorf("all/no_results = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.searchesTotal.WithLabelValues("pip", OutcomeFailed)); got != 1 {
		t.Errorf("pip/failed = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.searchDuration); n != 3 {
		t.Errorf("duration series = %d, want 3", n)
	}
}

func TestObserveSearch_NilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveSearch("uv", OutcomeOK, time.Millisecond, 1)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveSearch("conda", OutcomeOK, time.Millisecond, 2)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), `pydepdocs_searches_total{outcome="ok",package="conda"} 1`) {
		t.Errorf("exposition missing search counter:\n%s", body)
	}
}

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/healthz", "/ok", "/ok"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	if got := testutil.ToFloat64(m.http.requestsTotal.WithLabelValues("GET", "/healthz", "503")); got != 1 {
		t.Errorf("healthz 503 count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.http.requestsTotal.WithLabelValues("GET", "/ok", "200")); got != 2 {
		t.Errorf("ok 200 count = %v, want 2", got)
	}
	if n := testutil.CollectAndCount(m.http.requestDuration); n != 2 {
		t.Errorf("duration series = %d, want 2", n)
	}
}
