package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "courtclock/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestAdaptChi_RoutesGroupsAndMiddleware(t *testing.T) {
	t.Parallel()

	m := chi.NewRouter()
	r := phttp.AdaptChi(m)

	var hits int
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			hits++
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api/v1", func(api phttp.Router) {
		api.Group(func(g phttp.Router) {
			phttp.GetJSON(g, "/ping", func(*http.Request) (any, error) { return "pong", nil })
		})
		phttp.PostJSON(api, "/echo", func(_ *http.Request, in echoIn) (any, error) { return in, nil })
	})
	r.Handle("/raw", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) }))

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/api/v1/ping", http.StatusOK},
		{http.MethodPost, "/api/v1/ping", http.StatusMethodNotAllowed},
		{http.MethodGet, "/raw", http.StatusTeapot},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
		if rec.Code != c.want {
			t.Fatalf("%s %s = %d, want %d", c.method, c.path, rec.Code, c.want)
		}
	}
	if hits != len(cases) {
		t.Fatalf("middleware hits = %d, want %d", hits, len(cases))
	}
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()

	off := chi.NewRouter()
	phttp.MountProfiler(phttp.AdaptChi(off), "/debug", false)
	rec := httptest.NewRecorder()
	off.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler should 404, got %d", rec.Code)
	}

	on := chi.NewRouter()
	phttp.MountProfiler(phttp.AdaptChi(on), "/debug", true)
	rec = httptest.NewRecorder()
	on.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("enabled profiler should serve index, got %d", rec.Code)
	}
}
