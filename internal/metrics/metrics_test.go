package metrics

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	_ "modernc.org/sqlite"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/api/products/1", "/api/products/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
		# HELP dreamspace_http_requests_total Total number of HTTP requests
		# TYPE dreamspace_http_requests_total counter
		dreamspace_http_requests_total{method="GET",route="/api/products/{id}",status="404"} 2
	`
	if err := testutil.CollectAndCompare(m.HTTPRequestsTotal, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if count := testutil.CollectAndCount(m.HTTPRequestDuration); count != 1 {
		t.Errorf("duration series = %d, want 1", count)
	}
	if v := testutil.ToFloat64(m.HTTPRequestsInFlight); v != 0 {
		t.Errorf("in flight = %v, want 0", v)
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/known", func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown/123", nil))

	if v := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")); v != 1 {
		t.Errorf("unmatched counter = %v, want 1", v)
	}
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New()
	m.HTTPRequestsTotal.WithLabelValues("GET", "/x", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, want := range []string{"dreamspace_http_requests_total", "go_goroutines"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition missing %s", want)
		}
	}
}

func TestRegisterDB(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	m := New()
	if err := m.RegisterDB(db, "dreamspace"); err != nil {
		t.Fatalf("RegisterDB: %v", err)
	}
	if err := m.RegisterDB(db, "dreamspace"); err == nil {
		t.Error("registering the same db twice should fail")
	}

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "go_sql_open_connections" {
			found = true
		}
	}
	if !found {
		t.Error("db stats not exported")
	}
}
