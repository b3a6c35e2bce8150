package api

import (
	"net/http"

	"github.com/shhan95/firecode-watch/internal/dashboard"
	"github.com/shhan95/firecode-watch/internal/render"
	"github.com/shhan95/firecode-watch/internal/report"
)

// StatusResponse is the API response for overall status.
type StatusResponse struct {
	State   string `json:"state"` // ok | no_data | failed
	Date    string `json:"date,omitempty"`
	Result  string `json:"result,omitempty"`
	Summary string `json:"summary,omitempty"`
	Mock    bool   `json:"mock"`
	Changes int    `json:"changes"`
	Errors  int    `json:"errors"`
	Message string `json:"message,omitempty"`
}

// ReportResponse is the API response for the full latest record plus
// per-section load errors.
type ReportResponse struct {
	State   string            `json:"state"`
	Message string            `json:"message,omitempty"`
	Record  *report.RunRecord `json:"record,omitempty"`
	NFPCErr string            `json:"nfpc_error,omitempty"`
	NFTCErr string            `json:"nftc_error,omitempty"`
}

func runStateLabel(s dashboard.RunState) string {
	switch s {
	case dashboard.RunNoData:
		return "no_data"
	case dashboard.RunFailed:
		return "failed"
	default:
		return "ok"
	}
}

func statusFromView(view *dashboard.PageView) StatusResponse {
	resp := StatusResponse{
		State:   runStateLabel(view.Run.State),
		Message: view.Run.Message,
	}
	if rec := view.Run.Record; rec != nil {
		resp.Date = rec.Date
		resp.Result = rec.Result
		resp.Summary = rec.Summary
		resp.Mock = rec.Meta.Mock
		resp.Changes = len(rec.Changes)
		resp.Errors = len(rec.Errors)
	}
	return resp
}

func (s *Server) pageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		view := s.loader.Load(r.Context())
		page, err := render.Page(view)
		if err != nil {
			http.Error(w, "render failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}
}

func (s *Server) statusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		view := s.loader.Load(r.Context())
		writeJSON(w, statusFromView(view))
	}
}

func (s *Server) reportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		view := s.loader.Load(r.Context())

		resp := ReportResponse{
			State:   runStateLabel(view.Run.State),
			Message: view.Run.Message,
			Record:  view.Run.Record,
		}
		if view.NFPC.Err != nil {
			resp.NFPCErr = view.NFPC.Err.Error()
		}
		if view.NFTC.Err != nil {
			resp.NFTCErr = view.NFTC.Err.Error()
		}
		writeJSON(w, resp)
	}
}

func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	}
}
