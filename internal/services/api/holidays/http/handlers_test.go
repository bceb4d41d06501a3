package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "courtclock/internal/platform/errors"
	phttp "courtclock/internal/platform/net/http"
	"courtclock/internal/services/api/holidays/domain"
)

type fakeSvc struct {
	imported domain.ImportInput
}

func (f *fakeSvc) List(_ context.Context, in domain.ListInput) ([]domain.Holiday, error) {
	if in.JurisdictionID == "down" {
		return nil, perr.Unavailablef("holiday store is not configured")
	}
	return []domain.Holiday{{Date: "2024-11-28", Name: "Thanksgiving Day", Type: "FEDERAL", Jurisdictions: []string{}}}, nil
}

func (f *fakeSvc) Federal(_ context.Context, in domain.YearInput) ([]domain.FederalHoliday, error) {
	return []domain.FederalHoliday{{Name: "New Year's Day", Date: "2024-01-01"}}, nil
}

func (f *fakeSvc) Seed(_ context.Context, in domain.SeedInput) (domain.SeedResult, error) {
	return domain.SeedResult{Inserted: 10 * (in.To - in.From + 1)}, nil
}

func (f *fakeSvc) Import(_ context.Context, in domain.ImportInput) (domain.ImportResult, error) {
	f.imported = in
	return domain.ImportResult{Jurisdictions: len(in.Jurisdictions), SeedResult: domain.SeedResult{Inserted: len(in.Holidays)}}, nil
}

func post(t *testing.T, svc domain.ServicePort, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), svc)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPost, path, strings.NewReader(body)))
	return rr
}

func TestRoutes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		path   string
		body   string
		status int
		field  string
	}{
		{"list", "/list", `{"jurisdiction_id":"ca-superior","year":2024}`, stdhttp.StatusOK, ""},
		{"list store down", "/list", `{"jurisdiction_id":"down","year":2024}`, stdhttp.StatusServiceUnavailable, ""},
		{"list year out of range", "/list", `{"year":1776}`, stdhttp.StatusBadRequest, "year"},
		{"federal", "/federal", `{"year":2024}`, stdhttp.StatusOK, ""},
		{"seed", "/seed", `{"from":2024,"to":2030}`, stdhttp.StatusOK, ""},
		{"seed backwards", "/seed", `{"from":2030,"to":2024}`, stdhttp.StatusBadRequest, "to"},
		{"import", "/import", `{"holidays":[{"date":"2024-07-04","name":"Independence Day","type":"FEDERAL"}]}`, stdhttp.StatusCreated, ""},
		{"import bad zone", "/import", `{"jurisdictions":[{"id":"x","name":"X","time_zone":"Mars/Olympus"}]}`, stdhttp.StatusBadRequest, "time_zone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := post(t, &fakeSvc{}, tc.path, tc.body)
			if rr.Code != tc.status {
				t.Fatalf("status = %d body=%s", rr.Code, rr.Body)
			}
			var env struct {
				Field string `json:"field"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Field != tc.field {
				t.Fatalf("field = %q, want %q", env.Field, tc.field)
			}
		})
	}
}
