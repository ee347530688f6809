package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oakhaven/casework/internal/classifier"
	"github.com/oakhaven/casework/internal/models"
	"github.com/oakhaven/casework/internal/report"
	"github.com/oakhaven/casework/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.MemoryStorage) {
	t.Helper()

	store := storage.NewMemoryStorage()
	store.AddHouse(models.House{ID: "house-1", Name: "Oak House"})
	store.AddResident(models.Resident{ID: "res-1", HouseID: "house-1", FirstName: "John", LastName: "D"})

	logger := zap.NewNop()
	notes := classifier.NewNoteClassifier(nil, 15, 0.3, logger)
	documents := classifier.NewDocumentClassifier(nil, 15, 0.3, logger)
	extractor := classifier.NewExtractor(nil, 0.3, 10, logger)
	aggregator := report.NewAggregator(store)
	synthesizer := report.NewSynthesizer(nil, 120, logger)

	return New(store, notes, documents, extractor, aggregator, synthesizer, logger), store
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestClassifyNotePersistsRedactedNote(t *testing.T) {
	srv, store := newTestServer(t)

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/notes/classify",
		`{"resident_id":"res-1","text":"He cleaned the kitchen, sponsor info: call 555-123-4567"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		NoteID     string  `json:"note_id"`
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.NoteID)

	saved, err := store.GetNotesByResident(context.Background(), "res-1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.NotContains(t, saved[0].Text, "555-123-4567")
	assert.Contains(t, saved[0].Text, "[PHONE]")
}

func TestClassifyNoteMissingFields(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/notes/classify", `{"text":"no resident"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv.Routes(), http.MethodPost, "/api/notes/classify", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassifyNoteUnknownResident(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/notes/classify",
		`{"resident_id":"ghost","text":"He cleaned the kitchen today"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClassifyDocumentEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/documents/classify",
		`{"text":"Formal warning issued for a curfew violation last night"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.ClassificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.CategoryWriteup, result.Category)
}

func TestSegmentTranscriptPersistsSegments(t *testing.T) {
	srv, store := newTestServer(t)

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/transcripts/segment",
		`{"resident_id":"res-1","transcript":"John met with his sponsor today. He also cleaned the kitchen without being asked."}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Segments []models.TranscriptSegment `json:"segments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Segments, 2)
	assert.Equal(t, models.CategorySponsor, resp.Segments[0].Category)
	assert.Equal(t, models.CategoryChores, resp.Segments[1].Category)

	saved, err := store.GetNotesByResident(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestWeeklyReportEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	store.AddMeeting(models.Meeting{ID: "m1", ResidentID: "res-1", HouseID: "house-1", Kind: "AA", Date: "2024-01-02"})

	rec := doRequest(t, srv.Routes(), http.MethodGet,
		"/api/residents/res-1/report?week_start=2024-01-01&week_end=2024-01-07", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var draft models.WeeklyReportDraft
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draft))
	assert.Equal(t, "res-1", draft.ResidentID)
	assert.Contains(t, draft.Body, "Weekly Progress Report for John D (Oak House)")
	assert.Contains(t, draft.Body, "AA meeting on 2024-01-02")
}

func TestCreateIncidentPersistsRedactedIncident(t *testing.T) {
	srv, store := newTestServer(t)

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/incidents",
		`{"resident_id":"res-1","description":"Argument with Sponsor: John Smith over curfew","severity":"medium","date_occurred":"2024-01-03"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var incident models.Incident
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &incident))
	assert.NotEmpty(t, incident.ID)
	assert.Equal(t, "medium", incident.Severity)

	saved, err := store.GetIncidentsByResident(context.Background(), "res-1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "2024-01-03", saved[0].DateOccurred)
	assert.NotContains(t, saved[0].Description, "John Smith")
	assert.Contains(t, saved[0].Description, "[REDACTED_NAME]")
}

func TestCreateIncidentDefaultsAndValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/incidents",
		`{"resident_id":"res-1","description":"Missed curfew by an hour"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var incident models.Incident
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &incident))
	assert.Equal(t, "low", incident.Severity)

	rec = doRequest(t, srv.Routes(), http.MethodPost, "/api/incidents", `{"resident_id":"res-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv.Routes(), http.MethodPost, "/api/incidents",
		`{"resident_id":"ghost","description":"Missed curfew by an hour"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWeeklyReportMissingBounds(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv.Routes(), http.MethodGet, "/api/residents/res-1/report", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeeklyReportUnknownResident(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv.Routes(), http.MethodGet,
		"/api/residents/ghost/report?week_start=2024-01-01&week_end=2024-01-07", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWeeklyReportInvalidBoundsAreClientErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv.Routes(), http.MethodGet,
		"/api/residents/res-1/report?week_start=not-a-date&week_end=2024-01-07", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// A store outage during aggregation is a server-side failure, not a client
// error.
type failingStore struct {
	*storage.MemoryStorage
}

func (f *failingStore) GetGoalsByResident(ctx context.Context, residentID string) ([]models.Goal, error) {
	return nil, errors.New("connection refused")
}

func TestWeeklyReportStoreFailureIsServerError(t *testing.T) {
	mem := storage.NewMemoryStorage()
	mem.AddHouse(models.House{ID: "house-1", Name: "Oak House"})
	mem.AddResident(models.Resident{ID: "res-1", HouseID: "house-1", FirstName: "John", LastName: "D"})
	store := &failingStore{MemoryStorage: mem}

	logger := zap.NewNop()
	srv := New(store,
		classifier.NewNoteClassifier(nil, 15, 0.3, logger),
		classifier.NewDocumentClassifier(nil, 15, 0.3, logger),
		classifier.NewExtractor(nil, 0.3, 10, logger),
		report.NewAggregator(store),
		report.NewSynthesizer(nil, 120, logger),
		logger)

	rec := doRequest(t, srv.Routes(), http.MethodGet,
		"/api/residents/res-1/report?week_start=2024-01-01&week_end=2024-01-07", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv.Routes(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
