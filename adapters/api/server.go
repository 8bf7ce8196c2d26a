package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gomice/adapters/diagnostics"
	"gomice/adapters/excel"
	"gomice/app"
	"gomice/domain/core"
	apperrors "gomice/internal/errors"
	"gomice/ports"
)

// Server exposes one-shot imputation runs over HTTP. It is a stateless
// collaborator around the session service: upload a file, get the
// missingness table and completed data back as JSON.
type Server struct {
	sessions *app.SessionService
	router   chi.Router
}

// NewServer creates the HTTP surface
func NewServer(sessions *app.SessionService) *Server {
	s := &Server{sessions: sessions}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/impute", s.handleImpute)

	s.router = r
	return s
}

// Handler returns the http handler for mounting or serving
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving on the given port
func (s *Server) ListenAndServe(port string) error {
	log.Printf("[API] listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// imputeResponse is the JSON shape returned by POST /api/impute
type imputeResponse struct {
	Result           *app.RunResult               `json:"result"`
	NumericSummaries []diagnostics.NumericSummary `json:"numeric_summaries,omitempty"`
	Comparisons      []ports.ColumnComparison     `json:"comparisons,omitempty"`
}

// handleImpute accepts a multipart upload ("file") plus form fields:
// continuous (comma-separated column names), chains, iterations, seed.
func (s *Server) handleImpute(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.InvalidInput("expected multipart form upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.InvalidInput("missing dataset file"))
		return
	}
	defer file.Close()

	tmpPath, err := saveUpload(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, apperrors.ReadError("failed to buffer upload", err))
		return
	}
	defer os.Remove(tmpPath)

	req := app.RunRequest{
		ContinuousColumns: splitList(r.FormValue("continuous")),
		Chains:            formInt(r, "chains"),
		Iterations:        formInt(r, "iterations"),
		Seed:              formInt64(r, "seed"),
	}

	result, err := s.sessions.RunFile(r.Context(), excel.NewDataReader(tmpPath), nil, req)
	if err != nil {
		switch {
		case apperrors.GetCode(err) == apperrors.CodeReadError:
			writeError(w, http.StatusBadRequest, err)
		case core.IsDataValidityError(err):
			writeError(w, http.StatusUnprocessableEntity, apperrors.DataValidity("imputation run failed", err))
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	resp := imputeResponse{Result: result}
	if len(result.Completed) > 0 {
		resp.NumericSummaries = diagnostics.NumericSummaries(result.Sanitized, result.Completed[0])
		resp.Comparisons = diagnostics.BuildComparisons(result.Sanitized, result.Completed[0])
	}

	writeJSON(w, http.StatusOK, resp)
}

// saveUpload buffers the multipart stream to a temp file so the Excel
// reader can open it by path
func saveUpload(file io.Reader, filename string) (string, error) {
	ext := filepath.Ext(filename)
	tmp, err := os.CreateTemp("", "gomice-upload-*"+ext)
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func formInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.FormValue(key))
	return n
}

func formInt64(r *http.Request, key string) int64 {
	n, _ := strconv.ParseInt(r.FormValue(key), 10, 64)
	return n
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"code":  apperrors.GetCode(err),
		"error": err.Error(),
	})
}
