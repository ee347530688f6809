package storage

import (
	"context"
	"errors"

	"github.com/oakhaven/casework/internal/models"
)

// ErrNotFound is returned when a resident or house lookup misses.
var ErrNotFound = errors.New("record not found")

// Storage is the record store the classification and report pipeline reads
// from. Per-resident getters return every record for the resident; window
// filtering is the aggregator's job. All reads are treated as read-only
// within a single aggregation.
type Storage interface {
	GetResident(ctx context.Context, id string) (*models.Resident, error)
	GetHouse(ctx context.Context, id string) (*models.House, error)

	GetGoalsByResident(ctx context.Context, residentID string) ([]models.Goal, error)
	GetChoresByResident(ctx context.Context, residentID string) ([]models.Chore, error)
	GetAccomplishmentsByResident(ctx context.Context, residentID string) ([]models.Accomplishment, error)
	GetIncidentsByResident(ctx context.Context, residentID string) ([]models.Incident, error)
	GetMeetingsByResident(ctx context.Context, residentID string) ([]models.Meeting, error)
	GetProgramFeesByResident(ctx context.Context, residentID string) ([]models.ProgramFee, error)
	GetNotesByResident(ctx context.Context, residentID string) ([]models.Note, error)
	GetChecklistByResident(ctx context.Context, residentID string) ([]models.ChecklistItem, error)

	CreateNote(ctx context.Context, note *models.Note) error
	CreateIncident(ctx context.Context, incident *models.Incident) error

	Close() error
}
