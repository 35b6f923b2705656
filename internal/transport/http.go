package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/danhawke/crewledger/internal/domain/finance"
	"github.com/danhawke/crewledger/internal/domain/ledger"
	"github.com/danhawke/crewledger/internal/domain/variance"
	"github.com/danhawke/crewledger/internal/domain/workload"
	"github.com/danhawke/crewledger/internal/repository"
	"github.com/go-chi/chi/v5"
)

// Services groups the calculators the HTTP surface exposes.
type Services struct {
	Finance  *finance.Service
	Variance *variance.Service
	Workload *workload.Service
}

// Server wires HTTP handlers. It serializes calculator outputs and maps
// domain errors to status codes; no business logic lives here.
type Server struct {
	services Services
}

// NewServer creates an HTTP router with middleware.
func NewServer(services Services, middlewares ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	srv := &Server{services: services}

	r.Get("/health", srv.handleHealth)
	r.Get("/reports/services", srv.handleServiceReport)
	r.Get("/reports/projects/margins", srv.handleMarginReport)
	r.Get("/projects/{projectID}/overview", srv.handleProjectOverview)
	r.Get("/projects/{projectID}/margin", srv.handleProjectMargin)
	r.Get("/tasks/{taskID}/variance", srv.handleTaskVariance)
	r.Get("/profiles/{profileID}/workload", srv.handleWorkload)
	r.Post("/assignments/check", srv.handleAssignmentCheck)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleServiceReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.services.Finance.ServiceReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleMarginReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.services.Finance.MarginReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleProjectOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.services.Finance.ProjectOverview(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleProjectMargin(w http.ResponseWriter, r *http.Request) {
	margin, err := s.services.Finance.ProjectMargin(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, margin)
}

func (s *Server) handleTaskVariance(w http.ResponseWriter, r *http.Request) {
	tv, err := s.services.Variance.TaskVariance(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if tv == nil {
		// No estimate context: callers hide the widget.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, tv)
}

func (s *Server) handleWorkload(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := s.services.Workload.Workload(r.Context(), chi.URLParam(r, "profileID"), win)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type assignmentCheckRequest struct {
	ProfileID        string  `json:"profile_id"`
	ProjectID        string  `json:"project_id"`
	ThresholdPercent float64 `json:"threshold_percent,omitempty"`
}

func (s *Server) handleAssignmentCheck(w http.ResponseWriter, r *http.Request) {
	var req assignmentCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ledger.ErrInvalidInput)
		return
	}
	advice, err := s.services.Workload.CheckAssignment(r.Context(), req.ProfileID, req.ProjectID, req.ThresholdPercent)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, advice)
}

func parseWindow(from, to string) (ledger.Window, error) {
	var win ledger.Window
	if from == "" || to == "" {
		return win, ledger.ErrInvalidInput
	}
	start, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return win, ledger.ErrInvalidInput
	}
	end, err := time.Parse(time.RFC3339, to)
	if err != nil {
		return win, ledger.ErrInvalidInput
	}
	win = ledger.Window{From: start, To: end}
	return win, ledger.ValidateWindow(win)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
