package models

// Category is the closed set of classification outcomes. Notes classify into
// the note set; scanned documents classify into the document set. CategoryNone
// is the neutral "no signal" outcome, CategoryGeneral the safe default for
// untrusted or low-confidence results.
type Category string

const (
	CategoryWorkSchool Category = "work_school"
	CategoryDemeanor   Category = "demeanor"
	CategorySponsor    Category = "sponsor"
	CategoryMedical    Category = "medical"
	CategoryChores     Category = "chores"
	CategoryGeneral    Category = "general"

	CategoryCommitment Category = "commitment"
	CategoryWriteup    Category = "writeup"

	CategoryNone Category = "none"
)

// NoteCategories lists the valid outcomes for note classification, in the
// priority order used to break keyword-count ties.
func NoteCategories() []Category {
	return []Category{
		CategoryWorkSchool,
		CategorySponsor,
		CategoryChores,
		CategoryMedical,
		CategoryDemeanor,
		CategoryGeneral,
	}
}

// DocumentCategories lists the valid outcomes for document classification.
// CategoryNone is a member: it is what document results demote to.
func DocumentCategories() []Category {
	return []Category{CategoryCommitment, CategoryWriteup, CategoryNone}
}

// ParseNoteCategory validates an untrusted category string against the note
// set. Unknown values coerce to CategoryGeneral; the boolean reports whether
// the input was recognized.
func ParseNoteCategory(s string) (Category, bool) {
	for _, c := range NoteCategories() {
		if string(c) == s {
			return c, true
		}
	}
	return CategoryGeneral, false
}

// ParseDocumentCategory validates an untrusted category string against the
// document set, coercing unknowns to CategoryNone.
func ParseDocumentCategory(s string) (Category, bool) {
	for _, c := range DocumentCategories() {
		if string(c) == s {
			return c, true
		}
	}
	return CategoryNone, false
}

// ClassificationResult is the transient outcome of classifying one piece of
// text. It never aliases or mutates its input.
type ClassificationResult struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason,omitempty"`
}

// TranscriptSegment is one classified sentence of a transcript. Segments are
// request-scoped; callers persist the ones they want to keep as notes.
type TranscriptSegment struct {
	Text       string   `json:"text"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason,omitempty"`
}
