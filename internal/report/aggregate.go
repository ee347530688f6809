// Package report aggregates a resident's activity over a date window and
// synthesizes it into a weekly narrative report.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oakhaven/casework/internal/models"
	"github.com/oakhaven/casework/internal/storage"
)

// ErrInvalidInput marks a caller contract violation (missing resident id or
// unparseable week bounds), as opposed to a store failure.
var ErrInvalidInput = errors.New("invalid input")

// WeekActivity holds every activity record for one resident whose relevant
// date falls inside [WeekStart, WeekEnd], plus the current checklist state.
// Empty kinds are empty slices, never nil errors.
type WeekActivity struct {
	WeekStart       string                  `json:"week_start"`
	WeekEnd         string                  `json:"week_end"`
	Goals           []models.Goal           `json:"goals"`
	Chores          []models.Chore          `json:"chores"`
	Accomplishments []models.Accomplishment `json:"accomplishments"`
	Incidents       []models.Incident       `json:"incidents"`
	Meetings        []models.Meeting        `json:"meetings"`
	ProgramFees     []models.ProgramFee     `json:"program_fees"`
	Notes           []models.Note           `json:"notes"`
	Checklist       []models.ChecklistItem  `json:"checklist"`
}

// Aggregator collects windowed activity from the record store. It holds no
// state of its own; concurrent aggregations need no coordination.
type Aggregator struct {
	store storage.Storage
}

func NewAggregator(store storage.Storage) *Aggregator {
	return &Aggregator{store: store}
}

// AggregateWeek fetches all activity for the resident and filters each kind by
// its relevant date field, falling back to the creation timestamp when the
// kind-specific field is empty. Comparison is inclusive and calendar-day
// precision. The checklist is a current-state snapshot and is not windowed.
// Missing or unparseable arguments are the only errors surfaced.
func (a *Aggregator) AggregateWeek(ctx context.Context, residentID, weekStart, weekEnd string) (*WeekActivity, error) {
	if residentID == "" {
		return nil, fmt.Errorf("%w: resident id is required", ErrInvalidInput)
	}
	start, err := parseDay(weekStart)
	if err != nil {
		return nil, fmt.Errorf("%w: week start %q", ErrInvalidInput, weekStart)
	}
	end, err := parseDay(weekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: week end %q", ErrInvalidInput, weekEnd)
	}

	week := &WeekActivity{WeekStart: weekStart, WeekEnd: weekEnd}

	goals, err := a.store.GetGoalsByResident(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("fetch goals: %w", err)
	}
	week.Goals = []models.Goal{}
	for _, g := range goals {
		if inWindow(g.AssignedDate, g.CreatedAt, start, end) {
			week.Goals = append(week.Goals, g)
		}
	}

	chores, err := a.store.GetChoresByResident(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("fetch chores: %w", err)
	}
	week.Chores = []models.Chore{}
	for _, c := range chores {
		if inWindow(c.AssignedDate, c.CreatedAt, start, end) {
			week.Chores = append(week.Chores, c)
		}
	}

	accomplishments, err := a.store.GetAccomplishmentsByResident(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("fetch accomplishments: %w", err)
	}
	week.Accomplishments = []models.Accomplishment{}
	for _, acc := range accomplishments {
		if inWindow(acc.DateOccurred, acc.CreatedAt, start, end) {
			week.Accomplishments = append(week.Accomplishments, acc)
		}
	}

	incidents, err := a.store.GetIncidentsByResident(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("fetch incidents: %w", err)
	}
	week.Incidents = []models.Incident{}
	for _, i := range incidents {
		if inWindow(i.DateOccurred, i.CreatedAt, start, end) {
			week.Incidents = append(week.Incidents, i)
		}
	}

	meetings, err := a.store.GetMeetingsByResident(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("fetch meetings: %w", err)
	}
	week.Meetings = []models.Meeting{}
	for _, m := range meetings {
		if inWindow(m.Date, m.CreatedAt, start, end) {
			week.Meetings = append(week.Meetings, m)
		}
	}

	fees, err := a.store.GetProgramFeesByResident(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("fetch program fees: %w", err)
	}
	week.ProgramFees = []models.ProgramFee{}
	for _, f := range fees {
		if inWindow(f.DueDate, f.CreatedAt, start, end) {
			week.ProgramFees = append(week.ProgramFees, f)
		}
	}

	notes, err := a.store.GetNotesByResident(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("fetch notes: %w", err)
	}
	week.Notes = []models.Note{}
	for _, n := range notes {
		if inWindow("", n.CreatedAt, start, end) {
			week.Notes = append(week.Notes, n)
		}
	}

	checklist, err := a.store.GetChecklistByResident(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("fetch checklist: %w", err)
	}
	week.Checklist = checklist
	if week.Checklist == nil {
		week.Checklist = []models.ChecklistItem{}
	}

	return week, nil
}

// parseDay reads the calendar date out of an ISO string, tolerating a
// trailing time component.
func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	return time.Parse("2006-01-02", s)
}

func inWindow(dateStr string, created time.Time, start, end time.Time) bool {
	day, err := parseDay(dateStr)
	if err != nil {
		if created.IsZero() {
			return false
		}
		day = time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
	}
	return !day.Before(start) && !day.After(end)
}
