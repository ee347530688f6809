package classifier

import (
	"context"

	"github.com/oakhaven/casework/internal/models"
)

// ClassificationProvider is an external text-classification capability. The
// returned category string is untrusted and must be validated by the caller.
// Providers may be absent (nil) or fail; callers always have an offline path.
type ClassificationProvider interface {
	Classify(ctx context.Context, text string, categories []models.Category) (category string, confidence float64, err error)
}

// GenerationProvider is an external text-generation capability used for report
// synthesis. Like classification, it may be absent or fail.
type GenerationProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
