package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakhaven/casework/internal/models"
)

func TestClassifyDocumentNoHitsReturnsNone(t *testing.T) {
	result := ClassifyDocument("completely unrelated text about the weather")
	assert.Equal(t, models.CategoryNone, result.Category)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestClassifyDocumentEmptyText(t *testing.T) {
	result := ClassifyDocument("")
	assert.Equal(t, models.CategoryNone, result.Category)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestClassifyDocumentCommitmentWins(t *testing.T) {
	result := ClassifyDocument("I agree to attend all house meetings and commit to my curfew.")
	assert.Equal(t, models.CategoryCommitment, result.Category)
	assert.Greater(t, result.Confidence, 0.0)
}

func TestClassifyDocumentWriteupWins(t *testing.T) {
	result := ClassifyDocument("Formal warning: curfew violation and a missed house meeting.")
	assert.Equal(t, models.CategoryWriteup, result.Category)
	assert.Greater(t, result.Confidence, 0.5)
}

func TestClassifyDocumentTieFavorsCommitment(t *testing.T) {
	// One hit per list: "agree" vs "warning".
	result := ClassifyDocument("He did agree after the warning")
	assert.Equal(t, models.CategoryCommitment, result.Category)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestClassifyDocumentConfidenceIsWinningShare(t *testing.T) {
	// Two writeup hits ("violation", "warning"), one commitment hit ("curfew").
	result := ClassifyDocument("Written warning issued for curfew violation")
	assert.Equal(t, models.CategoryWriteup, result.Category)
	assert.InDelta(t, 2.0/3.0, result.Confidence, 1e-9)
}

func TestClassifyDocumentIsCaseInsensitive(t *testing.T) {
	result := ClassifyDocument("CURFEW VIOLATION WARNING")
	assert.Equal(t, models.CategoryWriteup, result.Category)
}

func TestClassifyNoteKeywordsNoHitsReturnsNone(t *testing.T) {
	result := ClassifyNoteKeywords("nothing relevant here")
	assert.Equal(t, models.CategoryNone, result.Category)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestClassifyNoteKeywordsSponsor(t *testing.T) {
	result := ClassifyNoteKeywords("John met with his sponsor today.")
	assert.Equal(t, models.CategorySponsor, result.Category)
	assert.GreaterOrEqual(t, result.Confidence, 0.3)
}

func TestClassifyNoteKeywordsChores(t *testing.T) {
	result := ClassifyNoteKeywords("He also cleaned the kitchen without being asked.")
	assert.Equal(t, models.CategoryChores, result.Category)
	assert.GreaterOrEqual(t, result.Confidence, 0.3)
}

func TestClassifyNoteKeywordsMedical(t *testing.T) {
	result := ClassifyNoteKeywords("Picked up his medication after the clinic appointment")
	assert.Equal(t, models.CategoryMedical, result.Category)
}

func TestClassifyNoteKeywordsTieUsesPriorityOrder(t *testing.T) {
	// One work_school hit and one demeanor hit; work_school is higher priority.
	result := ClassifyNoteKeywords("Good mood at his job")
	assert.Equal(t, models.CategoryWorkSchool, result.Category)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
}
