package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/oakhaven/casework/internal/classifier"
	"github.com/oakhaven/casework/internal/models"
)

// EmptySection is the placeholder rendered when a report section has no
// underlying data for the week.
const EmptySection = "No updates this week."

const narrativeTemplate = `You are writing a weekly progress report for a residential recovery program.
Write a professional narrative covering, in order: sponsor contact and meetings,
work and goals, chores and program compliance, demeanor and participation,
professional help received, and accomplishments. Base the report strictly on
the structured data provided; do not invent events. Keep it to a few short
paragraphs.`

// Synthesizer renders aggregated weekly activity into a narrative body,
// preferring the generation provider and degrading to a deterministic
// template. The fallback output is byte-stable for identical input.
type Synthesizer struct {
	provider         classifier.GenerationProvider
	noteExcerptLimit int
	logger           *zap.Logger
}

func NewSynthesizer(provider classifier.GenerationProvider, noteExcerptLimit int, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		provider:         provider,
		noteExcerptLimit: noteExcerptLimit,
		logger:           logger,
	}
}

// Draft synthesizes the report body and wraps it in an immutable draft for
// the caller to persist.
func (s *Synthesizer) Draft(ctx context.Context, residentID string, week *WeekActivity, residentName, houseName string) models.WeeklyReportDraft {
	return models.WeeklyReportDraft{
		ResidentID: residentID,
		WeekStart:  week.WeekStart,
		WeekEnd:    week.WeekEnd,
		Body:       s.Synthesize(ctx, week, residentName, houseName),
	}
}

// Synthesize returns the generative report verbatim when the provider
// succeeds, else the deterministic template. It never mutates week.
func (s *Synthesizer) Synthesize(ctx context.Context, week *WeekActivity, residentName, houseName string) string {
	if s.provider != nil {
		body, err := s.generate(ctx, week, residentName, houseName)
		if err == nil {
			return body
		}
		s.logger.Warn("report generation failed, using template fallback", zap.Error(err))
	}
	return s.renderTemplate(week, residentName, houseName)
}

func (s *Synthesizer) generate(ctx context.Context, week *WeekActivity, residentName, houseName string) (string, error) {
	data, err := json.Marshal(week)
	if err != nil {
		return "", fmt.Errorf("marshal week activity: %w", err)
	}

	prompt := fmt.Sprintf("%s\n\nResident: %s\nHouse: %s\nWeek: %s through %s\n\nActivity data:\n%s",
		narrativeTemplate, residentName, houseName, week.WeekStart, week.WeekEnd, data)
	return s.provider.Generate(ctx, prompt)
}

// renderTemplate fills the six fixed sections in fixed order. Section and
// field order must not change: report reproducibility tests compare bytes.
func (s *Synthesizer) renderTemplate(week *WeekActivity, residentName, houseName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Weekly Progress Report for %s (%s)\n", residentName, houseName)
	fmt.Fprintf(&b, "Week of %s through %s\n", week.WeekStart, week.WeekEnd)

	section(&b, "Sponsor & Meetings", func(lines *[]string) {
		for _, m := range week.Meetings {
			*lines = append(*lines, fmt.Sprintf("%s meeting on %s%s", m.Kind, m.Date, location(m.Location)))
		}
		for _, n := range week.Notes {
			if n.Category == models.CategorySponsor {
				*lines = append(*lines, s.excerpt(n.Text))
			}
		}
	})

	section(&b, "Work & Goals", func(lines *[]string) {
		for _, g := range week.Goals {
			*lines = append(*lines, fmt.Sprintf("%s [%s]", g.Title, g.Status))
		}
		for _, n := range week.Notes {
			if n.Category == models.CategoryWorkSchool {
				*lines = append(*lines, s.excerpt(n.Text))
			}
		}
	})

	section(&b, "Chores & Compliance", func(lines *[]string) {
		for _, c := range week.Chores {
			*lines = append(*lines, fmt.Sprintf("%s [%s]", c.Name, c.Status))
		}
		for _, f := range week.ProgramFees {
			*lines = append(*lines, fmt.Sprintf("Program fee $%.2f due %s [%s]", f.Amount, f.DueDate, f.Status))
		}
		for _, n := range week.Notes {
			if n.Category == models.CategoryChores {
				*lines = append(*lines, s.excerpt(n.Text))
			}
		}
	})

	section(&b, "Demeanor & Participation", func(lines *[]string) {
		for _, i := range week.Incidents {
			*lines = append(*lines, fmt.Sprintf("Incident on %s (%s): %s", i.DateOccurred, i.Severity, i.Description))
		}
		for _, n := range week.Notes {
			if n.Category == models.CategoryDemeanor || n.Category == models.CategoryGeneral {
				*lines = append(*lines, s.excerpt(n.Text))
			}
		}
	})

	section(&b, "Professional Help", func(lines *[]string) {
		for _, n := range week.Notes {
			if n.Category == models.CategoryMedical {
				*lines = append(*lines, s.excerpt(n.Text))
			}
		}
	})

	section(&b, "Accomplishments", func(lines *[]string) {
		for _, a := range week.Accomplishments {
			*lines = append(*lines, fmt.Sprintf("%s (%s)", a.Description, a.DateOccurred))
		}
	})

	return b.String()
}

func section(b *strings.Builder, title string, fill func(*[]string)) {
	fmt.Fprintf(b, "\n%s:\n", title)

	var lines []string
	fill(&lines)
	if len(lines) == 0 {
		fmt.Fprintf(b, "%s\n", EmptySection)
		return
	}
	for _, line := range lines {
		fmt.Fprintf(b, "- %s\n", line)
	}
}

// excerpt truncates note text to the configured character budget, marking the
// cut with an ellipsis.
func (s *Synthesizer) excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= s.noteExcerptLimit {
		return text
	}
	return string(runes[:s.noteExcerptLimit]) + "..."
}

func location(loc string) string {
	if loc == "" {
		return ""
	}
	return " at " + loc
}
