package models

// WeeklyReportDraft is the synthesized narrative for one resident-week.
// Immutable once returned; persisting it is the caller's concern.
type WeeklyReportDraft struct {
	ResidentID string `json:"resident_id"`
	WeekStart  string `json:"week_start"`
	WeekEnd    string `json:"week_end"`
	Body       string `json:"body"`
}
