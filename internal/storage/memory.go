package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oakhaven/casework/internal/models"
)

// MemoryStorage is a mutex-guarded in-memory store used for development and
// tests. It implements the same Storage interface as Postgres.
type MemoryStorage struct {
	mu              sync.RWMutex
	residents       map[string]models.Resident
	houses          map[string]models.House
	goals           []models.Goal
	chores          []models.Chore
	accomplishments []models.Accomplishment
	incidents       []models.Incident
	meetings        []models.Meeting
	programFees     []models.ProgramFee
	notes           []models.Note
	checklist       []models.ChecklistItem
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		residents: make(map[string]models.Resident),
		houses:    make(map[string]models.House),
	}
}

func (s *MemoryStorage) GetResident(ctx context.Context, id string) (*models.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, exists := s.residents[id]; exists {
		return &r, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) GetHouse(ctx context.Context, id string) (*models.House, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if h, exists := s.houses[id]; exists {
		return &h, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) GetGoalsByResident(ctx context.Context, residentID string) ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Goal{}
	for _, g := range s.goals {
		if g.ResidentID == residentID {
			result = append(result, g)
		}
	}
	return result, nil
}

func (s *MemoryStorage) GetChoresByResident(ctx context.Context, residentID string) ([]models.Chore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Chore{}
	for _, c := range s.chores {
		if c.ResidentID == residentID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (s *MemoryStorage) GetAccomplishmentsByResident(ctx context.Context, residentID string) ([]models.Accomplishment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Accomplishment{}
	for _, a := range s.accomplishments {
		if a.ResidentID == residentID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *MemoryStorage) GetIncidentsByResident(ctx context.Context, residentID string) ([]models.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Incident{}
	for _, i := range s.incidents {
		if i.ResidentID == residentID {
			result = append(result, i)
		}
	}
	return result, nil
}

func (s *MemoryStorage) GetMeetingsByResident(ctx context.Context, residentID string) ([]models.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Meeting{}
	for _, m := range s.meetings {
		if m.ResidentID == residentID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (s *MemoryStorage) GetProgramFeesByResident(ctx context.Context, residentID string) ([]models.ProgramFee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.ProgramFee{}
	for _, f := range s.programFees {
		if f.ResidentID == residentID {
			result = append(result, f)
		}
	}
	return result, nil
}

func (s *MemoryStorage) GetNotesByResident(ctx context.Context, residentID string) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Note{}
	for _, n := range s.notes {
		if n.ResidentID == residentID {
			result = append(result, n)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryStorage) GetChecklistByResident(ctx context.Context, residentID string) ([]models.ChecklistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.ChecklistItem{}
	for _, item := range s.checklist {
		if item.ResidentID == residentID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *MemoryStorage) CreateNote(ctx context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	s.notes = append(s.notes, *note)
	return nil
}

func (s *MemoryStorage) CreateIncident(ctx context.Context, incident *models.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if incident.ID == "" {
		incident.ID = uuid.New().String()
	}
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = time.Now()
	}
	s.incidents = append(s.incidents, *incident)
	return nil
}

// Seeding helpers for development and tests.

func (s *MemoryStorage) AddResident(r models.Resident) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.residents[r.ID] = r
}

func (s *MemoryStorage) AddHouse(h models.House) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.houses[h.ID] = h
}

func (s *MemoryStorage) AddGoal(g models.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, g)
}

func (s *MemoryStorage) AddChore(c models.Chore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chores = append(s.chores, c)
}

func (s *MemoryStorage) AddAccomplishment(a models.Accomplishment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accomplishments = append(s.accomplishments, a)
}

func (s *MemoryStorage) AddIncident(i models.Incident) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidents = append(s.incidents, i)
}

func (s *MemoryStorage) AddMeeting(m models.Meeting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meetings = append(s.meetings, m)
}

func (s *MemoryStorage) AddProgramFee(f models.ProgramFee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.programFees = append(s.programFees, f)
}

func (s *MemoryStorage) AddChecklistItem(item models.ChecklistItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checklist = append(s.checklist, item)
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
