package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/model"
)

type DBConfig struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepoFromConfig(cfg *DBConfig) (*PostgresRepo, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Pass, cfg.Name)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// ping
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &PostgresRepo{DB: db}, nil
}

func (r *PostgresRepo) RunMigrations(ctx context.Context) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
		`CREATE TABLE IF NOT EXISTS admins (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            username VARCHAR(100) UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMP DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS organisations (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            timezone TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
        );`,
		`CREATE TABLE IF NOT EXISTS tasks (
            id TEXT PRIMARY KEY,
            organisation_id TEXT,
            title TEXT NOT NULL,
            description TEXT,
            status TEXT,
            priority TEXT,
            due_date TEXT,
            due_time TEXT,
            external_event_id TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
            updated_at TIMESTAMP WITH TIME ZONE
        );`,
		`CREATE TABLE IF NOT EXISTS meetings (
            id TEXT PRIMARY KEY,
            organisation_id TEXT,
            title TEXT NOT NULL,
            description TEXT,
            location TEXT,
            meeting_link TEXT,
            meeting_type TEXT,
            status TEXT,
            date TEXT,
            start_time TEXT,
            end_time TEXT,
            external_event_id TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
            updated_at TIMESTAMP WITH TIME ZONE
        );`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_external_event ON tasks (organisation_id, external_event_id);`,
		`CREATE INDEX IF NOT EXISTS idx_meetings_external_event ON meetings (organisation_id, external_event_id);`,
		`CREATE TABLE IF NOT EXISTS sync_history (
            id BIGSERIAL PRIMARY KEY,
            sync_time TIMESTAMP WITH TIME ZONE DEFAULT now(),
            sync_type TEXT NOT NULL,
            status TEXT NOT NULL,
            duration_ms BIGINT DEFAULT 0,
            details JSONB
        );`,
	}
	for _, q := range queries {
		if _, err := r.DB.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ADMIN

func (r *PostgresRepo) UpsertAdmin(ctx context.Context, username, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO admins (username, password_hash) VALUES ($1, $2)
         ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
		username, passwordHash)
	return err
}

func (r *PostgresRepo) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at
         FROM admins WHERE username = $1 LIMIT 1`, username)

	var a model.Admin
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ORGANISATIONS

func (r *PostgresRepo) UpsertOrganisation(ctx context.Context, org model.Organisation) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO organisations (id, name, timezone) VALUES ($1, $2, $3)
         ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, timezone = EXCLUDED.timezone`,
		org.ID, org.Name, org.Timezone)
	return err
}

// GetOrganisationTimezone returns the org's configured IANA zone, empty
// string when the org is unknown or has no zone set.
func (r *PostgresRepo) GetOrganisationTimezone(ctx context.Context, orgID string) (string, error) {
	var tz sql.NullString
	err := r.DB.QueryRowContext(ctx,
		`SELECT timezone FROM organisations WHERE id = $1`, orgID).Scan(&tz)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return tz.String, nil
}

// TASKS

// ListTasksForSync returns all non-cancelled tasks for the organisation,
// optionally restricted to the given priorities.
func (r *PostgresRepo) ListTasksForSync(ctx context.Context, orgID string, priorities []string) ([]model.Task, error) {
	query := `SELECT id, organisation_id, title, COALESCE(description, ''), COALESCE(status, ''),
                     COALESCE(priority, ''), COALESCE(due_date, ''), COALESCE(due_time, ''),
                     COALESCE(external_event_id, ''), created_at, updated_at
              FROM tasks
              WHERE organisation_id = $1 AND COALESCE(status, '') <> $2`
	args := []interface{}{orgID, model.StatusCancelled}
	if len(priorities) > 0 {
		query += ` AND priority = ANY($3)`
		args = append(args, pq.Array(priorities))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		var updated sql.NullTime
		if err := rows.Scan(&t.ID, &t.OrganisationID, &t.Title, &t.Description, &t.Status,
			&t.Priority, &t.DueDate, &t.DueTime, &t.ExternalEventID, &t.CreatedAt, &updated); err != nil {
			return nil, err
		}
		if updated.Valid {
			t.UpdatedAt = &updated.Time
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PostgresRepo) SetTaskExternalEventID(ctx context.Context, taskID, eventID string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE tasks SET external_event_id = $2, updated_at = now() WHERE id = $1`,
		taskID, eventID)
	return err
}

// MEETINGS

// ListMeetingsForSync returns all non-cancelled meetings for the
// organisation, optionally restricted to the given meeting types.
func (r *PostgresRepo) ListMeetingsForSync(ctx context.Context, orgID string, types []string) ([]model.Meeting, error) {
	query := `SELECT id, organisation_id, title, COALESCE(description, ''), COALESCE(location, ''),
                     COALESCE(meeting_link, ''), COALESCE(meeting_type, ''), COALESCE(status, ''),
                     COALESCE(date, ''), COALESCE(start_time, ''), COALESCE(end_time, ''),
                     COALESCE(external_event_id, ''), created_at, updated_at
              FROM meetings
              WHERE organisation_id = $1 AND COALESCE(status, '') <> $2`
	args := []interface{}{orgID, model.StatusCancelled}
	if len(types) > 0 {
		query += ` AND meeting_type = ANY($3)`
		args = append(args, pq.Array(types))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []model.Meeting
	for rows.Next() {
		var m model.Meeting
		var updated sql.NullTime
		if err := rows.Scan(&m.ID, &m.OrganisationID, &m.Title, &m.Description, &m.Location,
			&m.MeetingLink, &m.MeetingType, &m.Status, &m.Date, &m.StartTime, &m.EndTime,
			&m.ExternalEventID, &m.CreatedAt, &updated); err != nil {
			return nil, err
		}
		if updated.Valid {
			m.UpdatedAt = &updated.Time
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (r *PostgresRepo) SetMeetingExternalEventID(ctx context.Context, meetingID, eventID string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE meetings SET external_event_id = $2, updated_at = now() WHERE id = $1`,
		meetingID, eventID)
	return err
}

func (r *PostgresRepo) CreateImportedMeeting(ctx context.Context, m model.Meeting) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO meetings (id, organisation_id, title, description, location,
             meeting_type, status, date, start_time, end_time, external_event_id)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.OrganisationID, m.Title, m.Description, m.Location,
		m.MeetingType, m.Status, m.Date, m.StartTime, m.EndTime, m.ExternalEventID)
	return err
}

// HasRecordForExternalEvent reports whether any task or meeting of the
// organisation is already linked to the given Google event id.
func (r *PostgresRepo) HasRecordForExternalEvent(ctx context.Context, orgID, eventID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (
            SELECT 1 FROM meetings WHERE organisation_id = $1 AND external_event_id = $2
            UNION ALL
            SELECT 1 FROM tasks WHERE organisation_id = $1 AND external_event_id = $2
         )`, orgID, eventID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// SYNC HISTORY

func (r *PostgresRepo) CreateSyncHistory(ctx context.Context, syncType, status string, durationMs int64, details json.RawMessage) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO sync_history (sync_type, status, duration_ms, details)
         VALUES ($1, $2, $3, $4)`,
		syncType, status, durationMs, details)
	return err
}

func (r *PostgresRepo) GetSyncHistory(ctx context.Context, limit int) ([]model.SyncHistory, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, sync_time, sync_type, status, duration_ms, details
         FROM sync_history ORDER BY sync_time DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []model.SyncHistory
	for rows.Next() {
		var h model.SyncHistory
		var details []byte
		if err := rows.Scan(&h.ID, &h.SyncTime, &h.SyncType, &h.Status, &h.DurationMs, &details); err != nil {
			return nil, err
		}
		h.Details = details
		history = append(history, h)
	}
	return history, rows.Err()
}
