// Package server exposes the classification and report pipeline over a small
// JSON HTTP API. Routing and request parsing live here; all decisions belong
// to the internal packages it delegates to.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/oakhaven/casework/internal/classifier"
	"github.com/oakhaven/casework/internal/report"
	"github.com/oakhaven/casework/internal/storage"
)

type Server struct {
	store       storage.Storage
	notes       *classifier.Gated
	documents   *classifier.Gated
	extractor   *classifier.Extractor
	aggregator  *report.Aggregator
	synthesizer *report.Synthesizer
	logger      *zap.Logger
}

func New(store storage.Storage, notes, documents *classifier.Gated, extractor *classifier.Extractor, aggregator *report.Aggregator, synthesizer *report.Synthesizer, logger *zap.Logger) *Server {
	return &Server{
		store:       store,
		notes:       notes,
		documents:   documents,
		extractor:   extractor,
		aggregator:  aggregator,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/notes/classify", s.handleClassifyNote)
	mux.HandleFunc("POST /api/documents/classify", s.handleClassifyDocument)
	mux.HandleFunc("POST /api/transcripts/segment", s.handleSegmentTranscript)
	mux.HandleFunc("POST /api/incidents", s.handleCreateIncident)
	mux.HandleFunc("GET /api/residents/{id}/report", s.handleWeeklyReport)
	return mux
}

// NewHTTPServer wraps the routes in an *http.Server with explicit timeouts.
func NewHTTPServer(addr string, handler http.Handler, readTimeout, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
