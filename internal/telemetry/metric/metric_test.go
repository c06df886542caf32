package metric

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yndnr/rendezvous-go/internal/storage/memory"
)

func TestRegistryHandler(t *testing.T) {
	r := NewRegistry()
	r.RequestsTotal.WithLabelValues("POST", "/rendezvous", "201").Inc()
	r.RequestDuration.WithLabelValues("POST", "/rendezvous").Observe(0.002)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("GET /metrics status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`rendezvous_http_requests_total{code="201",method="POST",route="/rendezvous"} 1`,
		"rendezvous_http_request_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestStoreCollector(t *testing.T) {
	store := memory.New()
	r := NewRegistry()
	r.MustRegister(NewStoreCollector(store))

	if _, err := store.Create("", []byte("foo=bar")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		"rendezvous_sessions_active 1",
		"rendezvous_sessions_created_total 1",
		"rendezvous_sessions_expired_total 0",
		"rendezvous_sessions_evicted_total 0",
		"rendezvous_sessions_deleted_total 0",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
