package models

import "time"

// Resident is a person living in one of the houses.
type Resident struct {
	ID        string    `json:"id"`
	HouseID   string    `json:"house_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Resident) DisplayName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// House is a residential facility. Every activity record belongs to exactly
// one resident and one house.
type House struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Date fields on activity records are ISO calendar strings (YYYY-MM-DD) so
// that day-level window comparison never depends on timezone. CreatedAt is the
// generic fallback when the kind-specific date is empty.

type Goal struct {
	ID           string    `json:"id"`
	ResidentID   string    `json:"resident_id"`
	HouseID      string    `json:"house_id"`
	Title        string    `json:"title"`
	Details      string    `json:"details,omitempty"`
	Status       string    `json:"status"`
	AssignedDate string    `json:"assigned_date"`
	CreatedAt    time.Time `json:"created_at"`
}

type Chore struct {
	ID           string    `json:"id"`
	ResidentID   string    `json:"resident_id"`
	HouseID      string    `json:"house_id"`
	Name         string    `json:"name"`
	Details      string    `json:"details,omitempty"`
	Status       string    `json:"status"`
	AssignedDate string    `json:"assigned_date"`
	CreatedAt    time.Time `json:"created_at"`
}

type Accomplishment struct {
	ID           string    `json:"id"`
	ResidentID   string    `json:"resident_id"`
	HouseID      string    `json:"house_id"`
	Description  string    `json:"description"`
	DateOccurred string    `json:"date_occurred"`
	CreatedAt    time.Time `json:"created_at"`
}

type Incident struct {
	ID           string    `json:"id"`
	ResidentID   string    `json:"resident_id"`
	HouseID      string    `json:"house_id"`
	Description  string    `json:"description"`
	Severity     string    `json:"severity"`
	DateOccurred string    `json:"date_occurred"`
	CreatedAt    time.Time `json:"created_at"`
}

type Meeting struct {
	ID         string    `json:"id"`
	ResidentID string    `json:"resident_id"`
	HouseID    string    `json:"house_id"`
	Kind       string    `json:"kind"`
	Location   string    `json:"location,omitempty"`
	Date       string    `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
}

type ProgramFee struct {
	ID         string    `json:"id"`
	ResidentID string    `json:"resident_id"`
	HouseID    string    `json:"house_id"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	DueDate    string    `json:"due_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// Note is a free-text observation about a resident, stored with the category
// and confidence the classifier assigned at intake.
type Note struct {
	ID         string    `json:"id"`
	ResidentID string    `json:"resident_id"`
	HouseID    string    `json:"house_id"`
	Text       string    `json:"text"`
	Category   Category  `json:"category"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChecklistItem is current-state intake paperwork; it is never windowed into a
// weekly report, only snapshotted.
type ChecklistItem struct {
	ID         string    `json:"id"`
	ResidentID string    `json:"resident_id"`
	HouseID    string    `json:"house_id"`
	Label      string    `json:"label"`
	Done       bool      `json:"done"`
	CreatedAt  time.Time `json:"created_at"`
}
