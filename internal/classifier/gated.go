package classifier

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/oakhaven/casework/internal/models"
	"github.com/oakhaven/casework/internal/redact"
)

// Gated wraps an external classification provider with redaction, a
// minimum-length gate, an offline keyword fallback, and a minimum-confidence
// policy. It never returns an error: every failure mode degrades to a
// deterministic classification.
type Gated struct {
	provider   ClassificationProvider
	fallback   func(string) models.ClassificationResult
	categories []models.Category
	parse      func(string) (models.Category, bool)
	defaultCat models.Category
	minChars   int
	minConf    float64
	logger     *zap.Logger
}

// NewNoteClassifier builds the gated classifier for resident notes. A nil
// provider means the keyword path handles everything.
func NewNoteClassifier(provider ClassificationProvider, minChars int, minConfidence float64, logger *zap.Logger) *Gated {
	return &Gated{
		provider:   provider,
		fallback:   ClassifyNoteKeywords,
		categories: models.NoteCategories(),
		parse:      models.ParseNoteCategory,
		defaultCat: models.CategoryGeneral,
		minChars:   minChars,
		minConf:    minConfidence,
		logger:     logger,
	}
}

// NewDocumentClassifier builds the gated classifier for scanned documents
// (commitments and writeups).
func NewDocumentClassifier(provider ClassificationProvider, minChars int, minConfidence float64, logger *zap.Logger) *Gated {
	return &Gated{
		provider:   provider,
		fallback:   ClassifyDocument,
		categories: models.DocumentCategories(),
		parse:      models.ParseDocumentCategory,
		defaultCat: models.CategoryNone,
		minChars:   minChars,
		minConf:    minConfidence,
		logger:     logger,
	}
}

// Classify redacts text, then classifies it. Text shorter than the minimum
// after redaction is a policy short-circuit, not an error. Provider absence,
// provider errors, and unparseable provider output all fall back to the
// keyword path or the default category; low-confidence provider results are
// demoted to the default with a reason recording the original category.
func (g *Gated) Classify(ctx context.Context, text string) models.ClassificationResult {
	redacted := redact.Redact(text)

	if len(strings.TrimSpace(redacted)) < g.minChars {
		return models.ClassificationResult{
			Category:   models.CategoryNone,
			Confidence: 0,
			Reason:     "Text too short to classify.",
		}
	}

	if g.provider == nil {
		return g.fallback(redacted)
	}

	raw, confidence, err := g.provider.Classify(ctx, redacted, g.categories)
	if err != nil {
		g.logger.Warn("classification provider failed, using keyword fallback", zap.Error(err))
		return g.fallback(redacted)
	}

	category, ok := g.parse(raw)
	if !ok {
		g.logger.Warn("classification provider returned unknown category",
			zap.String("category", raw))
		return models.ClassificationResult{
			Category:   g.defaultCat,
			Confidence: 0,
			Reason:     fmt.Sprintf("Unrecognized category %q; saved as %s.", raw, g.defaultCat),
		}
	}

	if confidence < g.minConf {
		return models.ClassificationResult{
			Category:   g.defaultCat,
			Confidence: confidence,
			Reason:     fmt.Sprintf("Low confidence (%.2f) for %s; saved as %s.", confidence, category, g.defaultCat),
		}
	}

	return models.ClassificationResult{Category: category, Confidence: confidence}
}
