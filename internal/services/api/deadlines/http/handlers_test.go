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
	"courtclock/internal/services/api/deadlines/domain"
)

type fakeSvc struct {
	calc domain.CalculateRequest
	bulk domain.BulkInput
}

func (f *fakeSvc) Calculate(_ context.Context, in domain.CalculateRequest) (domain.CalculateResponse, error) {
	f.calc = in
	if in.JurisdictionID == "boom" {
		return domain.CalculateResponse{}, perr.Calculationf("exceeded 366 consecutive non-counting days")
	}
	return domain.CalculateResponse{Result: domain.Result{CalculatedDate: "2024-01-15", Warnings: []string{}}, AuditID: "a1"}, nil
}

func (f *fakeSvc) Bulk(_ context.Context, in domain.BulkInput) (domain.BulkResponse, error) {
	f.bulk = in
	return domain.BulkResponse{Summary: domain.BulkSummary{Total: len(in.Items), Successful: len(in.Items)}}, nil
}

func (f *fakeSvc) Save(_ context.Context, in domain.SaveInput) (domain.AuditRecord, error) {
	return domain.AuditRecord{ID: "a2", CaseID: in.CaseID, CreatedAt: "2024-01-02T03:04:05Z"}, nil
}

func (f *fakeSvc) ICS(context.Context, domain.ICSInput) ([]byte, error) {
	return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), nil
}

func serve(t *testing.T, svc domain.ServicePort, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), svc)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPost, path, strings.NewReader(body)))
	return rr
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       perr.ErrorCode  `json:"code"`
	Field      string          `json:"field"`
	Data       json.RawMessage `json:"data"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", rr.Body, err)
	}
	return env
}

func TestCalculate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{"ok", `{"trigger_date":"2024-01-01","time_limit":10,"time_limit_unit":"DAYS","calculation_method":"BUSINESS_DAYS","save":true}`, stdhttp.StatusOK, ""},
		{"zero limit", `{"trigger_date":"2024-01-01","time_limit":0,"time_limit_unit":"DAYS","calculation_method":"BUSINESS_DAYS"}`, stdhttp.StatusBadRequest, "time_limit"},
		{"bad unit", `{"trigger_date":"2024-01-01","time_limit":1,"time_limit_unit":"FORTNIGHTS","calculation_method":"BUSINESS_DAYS"}`, stdhttp.StatusBadRequest, "time_limit_unit"},
		{"bad date", `{"trigger_date":"01/02/2024","time_limit":1,"time_limit_unit":"DAYS","calculation_method":"BUSINESS_DAYS"}`, stdhttp.StatusBadRequest, "trigger_date"},
		{"unknown field", `{"trigger":"2024-01-01"}`, stdhttp.StatusBadRequest, ""},
		{"calculation error", `{"trigger_date":"2024-01-01","time_limit":1,"time_limit_unit":"DAYS","calculation_method":"COURT_DAYS","jurisdiction_id":"boom"}`, stdhttp.StatusUnprocessableEntity, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := &fakeSvc{}
			rr := serve(t, svc, "/calculate", tc.body)
			if rr.Code != tc.status {
				t.Fatalf("status = %d body=%s", rr.Code, rr.Body)
			}
			env := decode(t, rr)
			if env.Field != tc.field {
				t.Fatalf("field = %q, want %q", env.Field, tc.field)
			}
			if tc.status == stdhttp.StatusOK && !svc.calc.Save {
				t.Fatal("save flag not bound")
			}
		})
	}
}

func TestBulk_ItemsAreNotValidatedAtTheEdge(t *testing.T) {
	t.Parallel()
	svc := &fakeSvc{}
	body := `{"items":[{"trigger_date":"2024-01-01","time_limit":1,"time_limit_unit":"DAYS","calculation_method":"CALENDAR_DAYS"},{"time_limit":0}]}`
	rr := serve(t, svc, "/bulk", body)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body)
	}
	if len(svc.bulk.Items) != 2 {
		t.Fatalf("items = %d", len(svc.bulk.Items))
	}

	rr = serve(t, svc, "/bulk", `{"items":[]}`)
	if rr.Code != stdhttp.StatusBadRequest || decode(t, rr).Field != "items" {
		t.Fatalf("empty batch status = %d body=%s", rr.Code, rr.Body)
	}
}

func TestAudit_Created(t *testing.T) {
	t.Parallel()
	body := `{"input":{"trigger_date":"2024-01-01","time_limit":1,"time_limit_unit":"DAYS","calculation_method":"CALENDAR_DAYS"},
		"result":{"calculated_date":"2024-01-02","actual_days":1,"skipped_days":0,"skipped_details":{"weekends":0,"holidays":0,"custom_skipped":0},"calculation_steps":[],"warnings":[]},
		"case_id":"case-1"}`
	rr := serve(t, &fakeSvc{}, "/audit", body)
	if rr.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body)
	}
	var rec domain.AuditRecord
	if err := json.Unmarshal(decode(t, rr).Data, &rec); err != nil || rec.ID != "a2" || rec.CaseID != "case-1" {
		t.Fatalf("record = %+v err = %v", rec, err)
	}
}

func TestICS_RawCalendar(t *testing.T) {
	t.Parallel()
	body := `{"trigger_date":"2024-01-01","time_limit":10,"time_limit_unit":"DAYS","calculation_method":"BUSINESS_DAYS","title":"Reply due"}`
	rr := serve(t, &fakeSvc{}, "/ics", body)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body)
	}
	if ct := rr.Header().Get("Content-Type"); ct != calendarContentType {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.HasPrefix(rr.Body.String(), "BEGIN:VCALENDAR") {
		t.Fatalf("body = %q", rr.Body)
	}
}
