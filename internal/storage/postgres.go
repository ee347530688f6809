package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/oakhaven/casework/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresStorage{db: db}

	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetResident(ctx context.Context, id string) (*models.Resident, error) {
	query := `
		SELECT id, house_id, first_name, last_name, created_at
		FROM residents
		WHERE id = $1`

	r := &models.Resident{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.HouseID, &r.FirstName, &r.LastName, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying resident: %w", err)
	}
	return r, nil
}

func (s *PostgresStorage) GetHouse(ctx context.Context, id string) (*models.House, error) {
	query := `
		SELECT id, name, created_at
		FROM houses
		WHERE id = $1`

	h := &models.House{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(&h.ID, &h.Name, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying house: %w", err)
	}
	return h, nil
}

func (s *PostgresStorage) GetGoalsByResident(ctx context.Context, residentID string) ([]models.Goal, error) {
	query := `
		SELECT id, resident_id, house_id, title, details, status, assigned_date, created_at
		FROM goals
		WHERE resident_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, residentID)
	if err != nil {
		return nil, fmt.Errorf("error querying goals: %w", err)
	}
	defer rows.Close()

	result := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.ResidentID, &g.HouseID, &g.Title, &g.Details, &g.Status, &g.AssignedDate, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning goal: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func (s *PostgresStorage) GetChoresByResident(ctx context.Context, residentID string) ([]models.Chore, error) {
	query := `
		SELECT id, resident_id, house_id, name, details, status, assigned_date, created_at
		FROM chores
		WHERE resident_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, residentID)
	if err != nil {
		return nil, fmt.Errorf("error querying chores: %w", err)
	}
	defer rows.Close()

	result := []models.Chore{}
	for rows.Next() {
		var c models.Chore
		if err := rows.Scan(&c.ID, &c.ResidentID, &c.HouseID, &c.Name, &c.Details, &c.Status, &c.AssignedDate, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning chore: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (s *PostgresStorage) GetAccomplishmentsByResident(ctx context.Context, residentID string) ([]models.Accomplishment, error) {
	query := `
		SELECT id, resident_id, house_id, description, date_occurred, created_at
		FROM accomplishments
		WHERE resident_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, residentID)
	if err != nil {
		return nil, fmt.Errorf("error querying accomplishments: %w", err)
	}
	defer rows.Close()

	result := []models.Accomplishment{}
	for rows.Next() {
		var a models.Accomplishment
		if err := rows.Scan(&a.ID, &a.ResidentID, &a.HouseID, &a.Description, &a.DateOccurred, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning accomplishment: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (s *PostgresStorage) GetIncidentsByResident(ctx context.Context, residentID string) ([]models.Incident, error) {
	query := `
		SELECT id, resident_id, house_id, description, severity, date_occurred, created_at
		FROM incidents
		WHERE resident_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, residentID)
	if err != nil {
		return nil, fmt.Errorf("error querying incidents: %w", err)
	}
	defer rows.Close()

	result := []models.Incident{}
	for rows.Next() {
		var i models.Incident
		if err := rows.Scan(&i.ID, &i.ResidentID, &i.HouseID, &i.Description, &i.Severity, &i.DateOccurred, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning incident: %w", err)
		}
		result = append(result, i)
	}
	return result, rows.Err()
}

func (s *PostgresStorage) GetMeetingsByResident(ctx context.Context, residentID string) ([]models.Meeting, error) {
	query := `
		SELECT id, resident_id, house_id, kind, location, date, created_at
		FROM meetings
		WHERE resident_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, residentID)
	if err != nil {
		return nil, fmt.Errorf("error querying meetings: %w", err)
	}
	defer rows.Close()

	result := []models.Meeting{}
	for rows.Next() {
		var m models.Meeting
		if err := rows.Scan(&m.ID, &m.ResidentID, &m.HouseID, &m.Kind, &m.Location, &m.Date, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning meeting: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (s *PostgresStorage) GetProgramFeesByResident(ctx context.Context, residentID string) ([]models.ProgramFee, error) {
	query := `
		SELECT id, resident_id, house_id, amount, status, due_date, created_at
		FROM program_fees
		WHERE resident_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, residentID)
	if err != nil {
		return nil, fmt.Errorf("error querying program fees: %w", err)
	}
	defer rows.Close()

	result := []models.ProgramFee{}
	for rows.Next() {
		var f models.ProgramFee
		if err := rows.Scan(&f.ID, &f.ResidentID, &f.HouseID, &f.Amount, &f.Status, &f.DueDate, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning program fee: %w", err)
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func (s *PostgresStorage) GetNotesByResident(ctx context.Context, residentID string) ([]models.Note, error) {
	query := `
		SELECT id, resident_id, house_id, text, category, confidence, created_at
		FROM notes
		WHERE resident_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, residentID)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	defer rows.Close()

	result := []models.Note{}
	for rows.Next() {
		var n models.Note
		var category string
		if err := rows.Scan(&n.ID, &n.ResidentID, &n.HouseID, &n.Text, &category, &n.Confidence, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		n.Category, _ = models.ParseNoteCategory(category)
		result = append(result, n)
	}
	return result, rows.Err()
}

func (s *PostgresStorage) GetChecklistByResident(ctx context.Context, residentID string) ([]models.ChecklistItem, error) {
	query := `
		SELECT id, resident_id, house_id, label, done, created_at
		FROM checklist_items
		WHERE resident_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, residentID)
	if err != nil {
		return nil, fmt.Errorf("error querying checklist: %w", err)
	}
	defer rows.Close()

	result := []models.ChecklistItem{}
	for rows.Next() {
		var item models.ChecklistItem
		if err := rows.Scan(&item.ID, &item.ResidentID, &item.HouseID, &item.Label, &item.Done, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning checklist item: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (s *PostgresStorage) CreateNote(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO notes (id, resident_id, house_id, text, category, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		note.ID,
		note.ResidentID,
		note.HouseID,
		note.Text,
		string(note.Category),
		note.Confidence,
		note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating note: %w", err)
	}
	return nil
}

func (s *PostgresStorage) CreateIncident(ctx context.Context, incident *models.Incident) error {
	if incident.ID == "" {
		incident.ID = uuid.New().String()
	}
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO incidents (id, resident_id, house_id, description, severity, date_occurred, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		incident.ID,
		incident.ResidentID,
		incident.HouseID,
		incident.Description,
		incident.Severity,
		incident.DateOccurred,
		incident.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating incident: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
