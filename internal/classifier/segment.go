package classifier

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/oakhaven/casework/internal/models"
	"github.com/oakhaven/casework/internal/redact"
)

// LowConfidenceReason marks a segment that was demoted to the default
// category. The exact wording is surfaced to staff in the UI.
const LowConfidenceReason = "Low confidence; saved as General."

// Extractor splits a transcript (typically a transcribed voice note) into
// sentence segments and classifies each one independently. It is a pure
// function of the transcript and carries no state between calls.
type Extractor struct {
	provider    ClassificationProvider
	minConf     float64
	minFragment int
	logger      *zap.Logger
}

func NewExtractor(provider ClassificationProvider, minConfidence float64, minFragmentLen int, logger *zap.Logger) *Extractor {
	return &Extractor{
		provider:    provider,
		minConf:     minConfidence,
		minFragment: minFragmentLen,
		logger:      logger,
	}
}

// Segment redacts the transcript, splits it on sentence-terminal punctuation,
// discards fragments shorter than the minimum length, and classifies the rest
// in source order. Low-confidence segments are demoted to CategoryGeneral.
func (e *Extractor) Segment(ctx context.Context, transcript string) []models.TranscriptSegment {
	redacted := redact.Redact(transcript)

	fragments := splitSentences(redacted)
	segments := make([]models.TranscriptSegment, 0, len(fragments))
	for _, fragment := range fragments {
		if len(fragment) < e.minFragment {
			continue
		}

		result := e.classifyFragment(ctx, fragment)
		if result.Category == models.CategoryNone || result.Confidence < e.minConf {
			result = models.ClassificationResult{
				Category:   models.CategoryGeneral,
				Confidence: result.Confidence,
				Reason:     LowConfidenceReason,
			}
		}

		segments = append(segments, models.TranscriptSegment{
			Text:       fragment,
			Category:   result.Category,
			Confidence: result.Confidence,
			Reason:     result.Reason,
		})
	}
	return segments
}

func (e *Extractor) classifyFragment(ctx context.Context, fragment string) models.ClassificationResult {
	if e.provider == nil {
		return ClassifyNoteKeywords(fragment)
	}

	raw, confidence, err := e.provider.Classify(ctx, fragment, models.NoteCategories())
	if err != nil {
		e.logger.Warn("segment classification failed, using keyword heuristic", zap.Error(err))
		return ClassifyNoteKeywords(fragment)
	}

	category, ok := models.ParseNoteCategory(raw)
	if !ok {
		return models.ClassificationResult{Category: models.CategoryGeneral, Confidence: 0}
	}
	return models.ClassificationResult{Category: category, Confidence: confidence}
}

// splitSentences cuts text at '.', '!' and '?', keeping the terminator with
// its sentence. Runs of terminators ("?!") stay with one fragment. A trailing
// unterminated fragment is kept.
func splitSentences(text string) []string {
	var fragments []string
	var b strings.Builder
	terminated := false

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			fragments = append(fragments, s)
		}
		b.Reset()
	}

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			b.WriteRune(r)
			terminated = true
		default:
			if terminated {
				flush()
				terminated = false
			}
			b.WriteRune(r)
		}
	}
	flush()
	return fragments
}
