package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-studio/internal/config"
)

func TestHealthRoute(t *testing.T) {
	r := NewRouter(RouterDeps{Config: config.Config{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected health body %s", w.Body.String())
	}
}

func TestMetricsRoute(t *testing.T) {
	r := NewRouter(RouterDeps{Config: config.Config{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "export_started_total") {
		t.Fatalf("metrics body missing export counters: %s", w.Body.String())
	}
}

func TestAddr(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ":8080"},
		{"9090", ":9090"},
		{":7000", ":7000"},
	}
	for _, tc := range cases {
		if got := Addr(tc.in); got != tc.want {
			t.Fatalf("Addr(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
