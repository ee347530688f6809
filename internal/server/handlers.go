package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/oakhaven/casework/internal/models"
	"github.com/oakhaven/casework/internal/redact"
	"github.com/oakhaven/casework/internal/report"
	"github.com/oakhaven/casework/internal/storage"
)

type classifyNoteRequest struct {
	ResidentID string `json:"resident_id"`
	Text       string `json:"text"`
}

type classifyNoteResponse struct {
	NoteID string `json:"note_id"`
	models.ClassificationResult
}

// handleClassifyNote classifies staff-entered text about a resident and
// persists it as a note. Classification never fails the request; only bad
// input or storage problems do.
func (s *Server) handleClassifyNote(w http.ResponseWriter, r *http.Request) {
	var req classifyNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ResidentID == "" || req.Text == "" {
		s.writeError(w, http.StatusBadRequest, "resident_id and text are required")
		return
	}

	resident, err := s.store.GetResident(r.Context(), req.ResidentID)
	if err != nil {
		s.residentError(w, err)
		return
	}

	result := s.notes.Classify(r.Context(), req.Text)

	note := &models.Note{
		ResidentID: resident.ID,
		HouseID:    resident.HouseID,
		Text:       redact.Redact(req.Text),
		Category:   storedCategory(result.Category),
		Confidence: result.Confidence,
	}
	if err := s.store.CreateNote(r.Context(), note); err != nil {
		s.logger.Error("failed to persist note", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save note")
		return
	}

	s.writeJSON(w, http.StatusOK, classifyNoteResponse{NoteID: note.ID, ClassificationResult: result})
}

type classifyDocumentRequest struct {
	Text string `json:"text"`
}

// handleClassifyDocument classifies scanned document text as a commitment or
// a writeup. The result is transient; the document record itself is managed
// elsewhere.
func (s *Server) handleClassifyDocument(w http.ResponseWriter, r *http.Request) {
	var req classifyDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	s.writeJSON(w, http.StatusOK, s.documents.Classify(r.Context(), req.Text))
}

type segmentTranscriptRequest struct {
	ResidentID string `json:"resident_id"`
	Transcript string `json:"transcript"`
}

type segmentTranscriptResponse struct {
	Segments []models.TranscriptSegment `json:"segments"`
}

// handleSegmentTranscript splits a transcribed voice note into classified
// sentence segments and persists each one as a note.
func (s *Server) handleSegmentTranscript(w http.ResponseWriter, r *http.Request) {
	var req segmentTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ResidentID == "" || req.Transcript == "" {
		s.writeError(w, http.StatusBadRequest, "resident_id and transcript are required")
		return
	}

	resident, err := s.store.GetResident(r.Context(), req.ResidentID)
	if err != nil {
		s.residentError(w, err)
		return
	}

	segments := s.extractor.Segment(r.Context(), req.Transcript)
	for _, seg := range segments {
		note := &models.Note{
			ResidentID: resident.ID,
			HouseID:    resident.HouseID,
			Text:       seg.Text,
			Category:   storedCategory(seg.Category),
			Confidence: seg.Confidence,
		}
		if err := s.store.CreateNote(r.Context(), note); err != nil {
			s.logger.Error("failed to persist segment note", zap.Error(err))
			s.writeError(w, http.StatusInternalServerError, "failed to save segments")
			return
		}
	}

	s.writeJSON(w, http.StatusOK, segmentTranscriptResponse{Segments: segments})
}

type createIncidentRequest struct {
	ResidentID   string `json:"resident_id"`
	Description  string `json:"description"`
	Severity     string `json:"severity"`
	DateOccurred string `json:"date_occurred"`
}

// handleCreateIncident records an incident report for a resident. The
// description is redacted before it is stored.
func (s *Server) handleCreateIncident(w http.ResponseWriter, r *http.Request) {
	var req createIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ResidentID == "" || req.Description == "" {
		s.writeError(w, http.StatusBadRequest, "resident_id and description are required")
		return
	}

	resident, err := s.store.GetResident(r.Context(), req.ResidentID)
	if err != nil {
		s.residentError(w, err)
		return
	}

	severity := req.Severity
	if severity == "" {
		severity = "low"
	}
	incident := &models.Incident{
		ResidentID:   resident.ID,
		HouseID:      resident.HouseID,
		Description:  redact.Redact(req.Description),
		Severity:     severity,
		DateOccurred: req.DateOccurred,
	}
	if err := s.store.CreateIncident(r.Context(), incident); err != nil {
		s.logger.Error("failed to persist incident", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save incident")
		return
	}

	s.writeJSON(w, http.StatusOK, incident)
}

// handleWeeklyReport aggregates the resident's activity window and returns a
// synthesized report draft.
func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	residentID := r.PathValue("id")
	weekStart := r.URL.Query().Get("week_start")
	weekEnd := r.URL.Query().Get("week_end")
	if weekStart == "" || weekEnd == "" {
		s.writeError(w, http.StatusBadRequest, "week_start and week_end are required")
		return
	}

	resident, err := s.store.GetResident(r.Context(), residentID)
	if err != nil {
		s.residentError(w, err)
		return
	}
	house, err := s.store.GetHouse(r.Context(), resident.HouseID)
	if err != nil {
		s.logger.Error("failed to load house", zap.Error(err), zap.String("house_id", resident.HouseID))
		s.writeError(w, http.StatusInternalServerError, "failed to load house")
		return
	}

	week, err := s.aggregator.AggregateWeek(r.Context(), residentID, weekStart, weekEnd)
	if err != nil {
		if errors.Is(err, report.ErrInvalidInput) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("failed to aggregate week", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to aggregate activity")
		return
	}

	draft := s.synthesizer.Draft(r.Context(), residentID, week, resident.DisplayName(), house.Name)
	s.writeJSON(w, http.StatusOK, draft)
}

func (s *Server) residentError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "resident not found")
		return
	}
	s.logger.Error("failed to load resident", zap.Error(err))
	s.writeError(w, http.StatusInternalServerError, "failed to load resident")
}

// storedCategory maps the neutral "none" outcome to general for persistence;
// every stored note carries a category from the note set.
func storedCategory(c models.Category) models.Category {
	if c == models.CategoryNone {
		return models.CategoryGeneral
	}
	return c
}
