package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shhan95/firecode-watch/internal/dashboard"
	"github.com/shhan95/firecode-watch/internal/report"
)

type stubLoader struct {
	view *dashboard.PageView
}

func (s *stubLoader) Load(ctx context.Context) *dashboard.PageView {
	return s.view
}

func okView() *dashboard.PageView {
	return &dashboard.PageView{
		Run: dashboard.RunSection{
			State: dashboard.RunOK,
			Record: &report.RunRecord{
				Date:    "2026-08-29",
				Result:  "변경 있음",
				Summary: "자동 감지: 1건 변경(원문 확인 권장)",
				Changes: []report.ChangeEntry{{Code: "NFPC 101"}},
			},
		},
		NFPC: dashboard.InventorySection{Title: "NFPC"},
		NFTC: dashboard.InventorySection{Title: "NFTC"},
	}
}

func TestStatusHandler(t *testing.T) {
	server := NewServer(&stubLoader{view: okView()}, t.TempDir(), ":0")

	req := httptest.NewRequest("GET", "/api/status", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	var status StatusResponse
	json.NewDecoder(w.Body).Decode(&status)

	if status.State != "ok" {
		t.Errorf("State = %q, want ok", status.State)
	}
	if status.Changes != 1 || status.Errors != 0 {
		t.Errorf("Changes/Errors = %d/%d, want 1/0", status.Changes, status.Errors)
	}
}

func TestStatusHandler_NoData(t *testing.T) {
	view := &dashboard.PageView{
		Run: dashboard.RunSection{State: dashboard.RunNoData, Message: "No run records yet."},
	}
	server := NewServer(&stubLoader{view: view}, t.TempDir(), ":0")

	req := httptest.NewRequest("GET", "/api/status", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	var status StatusResponse
	json.NewDecoder(w.Body).Decode(&status)

	if status.State != "no_data" {
		t.Errorf("State = %q, want no_data", status.State)
	}
}

func TestPageHandler(t *testing.T) {
	server := NewServer(&stubLoader{view: okView()}, t.TempDir(), ":0")

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(w.Body.String(), "2026-08-29") {
		t.Error("page missing run record date")
	}
}

func TestReportHandler_SectionErrors(t *testing.T) {
	view := okView()
	view.NFPC.Err = &stubErr{}
	server := NewServer(&stubLoader{view: view}, t.TempDir(), ":0")

	req := httptest.NewRequest("GET", "/api/report", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	var resp ReportResponse
	json.NewDecoder(w.Body).Decode(&resp)

	if resp.NFPCErr == "" {
		t.Error("NFPCErr empty, want section error surfaced")
	}
	if resp.Record == nil || resp.Record.Date != "2026-08-29" {
		t.Error("record missing from report response")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server := NewServer(&stubLoader{view: okView()}, t.TempDir(), ":0")

	req := httptest.NewRequest("POST", "/api/status", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status = %d, want 405", w.Code)
	}
}

type stubErr struct{}

func (*stubErr) Error() string { return "fetch standards_nfpc.json: HTTP 500" }
