package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oakhaven/casework/internal/models"
)

func newOfflineExtractor() *Extractor {
	return NewExtractor(nil, 0.3, 10, zap.NewNop())
}

func TestSegmentVoiceNoteScenario(t *testing.T) {
	transcript := "John met with his sponsor today. He also cleaned the kitchen without being asked."

	segments := newOfflineExtractor().Segment(context.Background(), transcript)

	require.Len(t, segments, 2)
	assert.Equal(t, models.CategorySponsor, segments[0].Category)
	assert.Equal(t, models.CategoryChores, segments[1].Category)
	assert.GreaterOrEqual(t, segments[0].Confidence, 0.3)
	assert.GreaterOrEqual(t, segments[1].Confidence, 0.3)
}

func TestSegmentPreservesSourceOrder(t *testing.T) {
	transcript := "He went to work this morning. Sponsor called in the afternoon. Kitchen chores were finished before dinner."

	segments := newOfflineExtractor().Segment(context.Background(), transcript)

	require.Len(t, segments, 3)
	var texts []string
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}
	assert.Equal(t, transcript, strings.Join(texts, " "))
}

func TestSegmentDiscardsShortFragments(t *testing.T) {
	transcript := "Yes. He attended his therapy session and took his medication on schedule."

	segments := newOfflineExtractor().Segment(context.Background(), transcript)

	require.Len(t, segments, 1)
	assert.Equal(t, models.CategoryMedical, segments[0].Category)
}

func TestSegmentLowSignalDemotedToGeneral(t *testing.T) {
	transcript := "Nothing much happened around here!"

	segments := newOfflineExtractor().Segment(context.Background(), transcript)

	require.Len(t, segments, 1)
	assert.Equal(t, models.CategoryGeneral, segments[0].Category)
	assert.Equal(t, LowConfidenceReason, segments[0].Reason)
}

func TestSegmentEmptyTranscript(t *testing.T) {
	assert.Empty(t, newOfflineExtractor().Segment(context.Background(), ""))
}

func TestSegmentUsesProviderWhenAvailable(t *testing.T) {
	provider := &fakeProvider{category: "demeanor", confidence: 0.8}
	e := NewExtractor(provider, 0.3, 10, zap.NewNop())

	segments := e.Segment(context.Background(), "He seemed much more settled after dinner tonight.")

	require.Len(t, segments, 1)
	assert.Equal(t, models.CategoryDemeanor, segments[0].Category)
	assert.Equal(t, 0.8, segments[0].Confidence)
	assert.Equal(t, 1, provider.calls)
}

func TestSegmentProviderLowConfidenceDemoted(t *testing.T) {
	provider := &fakeProvider{category: "sponsor", confidence: 0.1}
	e := NewExtractor(provider, 0.3, 10, zap.NewNop())

	segments := e.Segment(context.Background(), "He seemed much more settled after dinner tonight.")

	require.Len(t, segments, 1)
	assert.Equal(t, models.CategoryGeneral, segments[0].Category)
	assert.Equal(t, LowConfidenceReason, segments[0].Reason)
}

func TestSegmentProviderErrorFallsBackToKeywords(t *testing.T) {
	provider := &fakeProvider{err: errors.New("timeout")}
	e := NewExtractor(provider, 0.3, 10, zap.NewNop())

	segments := e.Segment(context.Background(), "He finished his kitchen chores before curfew tonight.")

	require.Len(t, segments, 1)
	assert.Equal(t, models.CategoryChores, segments[0].Category)
}

func TestSegmentRedactsBeforeClassification(t *testing.T) {
	provider := &fakeProvider{category: "sponsor", confidence: 0.9}
	e := NewExtractor(provider, 0.3, 10, zap.NewNop())

	segments := e.Segment(context.Background(), "Sponsor: John Smith stopped by the house this afternoon.")

	require.Len(t, segments, 1)
	assert.NotContains(t, segments[0].Text, "John Smith")
	assert.Contains(t, segments[0].Text, "[REDACTED_NAME]")
	assert.NotContains(t, provider.lastText, "John Smith")
}

func TestSplitSentencesKeepsTerminators(t *testing.T) {
	fragments := splitSentences("Really?! He said that. And then left")
	assert.Equal(t, []string{"Really?!", "He said that.", "And then left"}, fragments)
}
