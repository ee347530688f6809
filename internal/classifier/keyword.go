package classifier

import (
	"regexp"
	"strings"

	"github.com/oakhaven/casework/internal/models"
)

// Document classification keyword lists. These are fixed configuration, not
// mutable package state; tests may run in parallel against them.
var (
	commitmentKeywords = []string{
		"commit", "agree", "promise", "plan", "goal",
		"attend", "curfew", "sign", "responsib",
	}
	writeupKeywords = []string{
		"violation", "warning", "incident", "rule", "breach",
		"missed", "refus", "late", "confrontation",
	}
)

// ClassifyDocument categorizes document text as a commitment or a writeup by
// counting keyword hits per list. Zero hits on both lists returns
// CategoryNone with confidence 0, signalling "defer to the next stage".
// Equal counts classify as commitment; the >= below is the documented
// tie-break, not an accident of iteration order.
func ClassifyDocument(text string) models.ClassificationResult {
	lowered := strings.ToLower(text)

	commitment := countHits(lowered, commitmentKeywords)
	writeup := countHits(lowered, writeupKeywords)
	total := commitment + writeup
	if total == 0 {
		return models.ClassificationResult{Category: models.CategoryNone, Confidence: 0}
	}

	if commitment >= writeup {
		return models.ClassificationResult{
			Category:   models.CategoryCommitment,
			Confidence: float64(commitment) / float64(total),
			Reason:     "Matched commitment keywords.",
		}
	}
	return models.ClassificationResult{
		Category:   models.CategoryWriteup,
		Confidence: float64(writeup) / float64(total),
		Reason:     "Matched writeup keywords.",
	}
}

func countHits(lowered string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			hits++
		}
	}
	return hits
}

// Note classification heuristics: one pattern per category, counted against
// the text. Declaration order doubles as the tie-break priority.
type noteHeuristic struct {
	category models.Category
	pattern  *regexp.Regexp
}

var noteHeuristics = []noteHeuristic{
	{models.CategoryWorkSchool, regexp.MustCompile(`(?i)\b(work|job|shift|school|class|interview|resume|employ\w*|paycheck)`)},
	{models.CategorySponsor, regexp.MustCompile(`(?i)\b(sponsor\w*|step work|12[ -]step|big book|meeting)`)},
	{models.CategoryChores, regexp.MustCompile(`(?i)\b(chore\w*|clean\w*|dishes|laundry|trash|kitchen|bathroom|sweep|mop|yard)`)},
	{models.CategoryMedical, regexp.MustCompile(`(?i)\b(doctor|medical|medication\w*|meds|appointment|therap\w*|dental|clinic|prescri\w*)`)},
	{models.CategoryDemeanor, regexp.MustCompile(`(?i)\b(mood|attitude|angry|upset|calm|irritable|withdrawn|motivat\w*|engag\w*|argument\w*)`)},
}

// ClassifyNoteKeywords is the offline note classifier: count regexp matches
// per category, highest count wins, ties resolved by the fixed priority order
// of noteHeuristics. Confidence is the winner's share of all matches. No
// matches at all returns CategoryNone with confidence 0.
func ClassifyNoteKeywords(text string) models.ClassificationResult {
	best := models.CategoryNone
	bestCount := 0
	total := 0
	for _, h := range noteHeuristics {
		n := len(h.pattern.FindAllStringIndex(text, -1))
		total += n
		if n > bestCount {
			best = h.category
			bestCount = n
		}
	}

	if total == 0 {
		return models.ClassificationResult{Category: models.CategoryNone, Confidence: 0}
	}
	return models.ClassificationResult{
		Category:   best,
		Confidence: float64(bestCount) / float64(total),
		Reason:     "Matched " + string(best) + " keywords.",
	}
}
