package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ReplaceBucket atomically swaps the cached contents of one snapshot bucket.
func (s *SQLiteStore) ReplaceBucket(ctx context.Context, bucket string, tasks []model.Task) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE bucket = ?", bucket); err != nil {
		return fmt.Errorf("clearing bucket %s: %w", bucket, err)
	}

	const query = `
		INSERT INTO tasks (
			bucket, id, project_id, project_name, project_color,
			title, description, priority,
			due_date, due_time, is_completed, completed_at,
			reminder_offsets, created_at, updated_at, fetched_at
		) VALUES (
			?, ?, ?, ?, ?,
			?, ?, ?,
			?, ?, ?, ?,
			?, ?, ?, ?
		)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		offsets, err := json.Marshal(t.ReminderOffsets)
		if err != nil {
			return fmt.Errorf("marshaling reminder offsets for task %d: %w", t.ID, err)
		}

		var completedAt interface{}
		if t.CompletedAt != nil {
			completedAt = t.CompletedAt.UTC()
		}

		_, err = stmt.ExecContext(ctx,
			bucket, t.ID, t.ProjectID, t.ProjectName, t.ProjectColor,
			t.Title, t.Description, t.Priority,
			t.DueDate, t.DueTime, boolToInt(t.IsCompleted), completedAt,
			string(offsets), t.CreatedAt.UTC(), t.UpdatedAt.UTC(), t.FetchedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("inserting task %d: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// GetBucket returns the cached tasks for one bucket ordered by due
// date/time, undated tasks last.
func (s *SQLiteStore) GetBucket(ctx context.Context, bucket string) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT * FROM tasks WHERE bucket = ?
		ORDER BY due_date = '', due_date, due_time, id`, bucket)
	if err != nil {
		return nil, fmt.Errorf("querying bucket %s: %w", bucket, err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// GetTaskByID returns a cached task by ID from any bucket, preferring the
// today bucket when a task appears in several. Returns nil when not cached.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id int64) (*model.Task, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT * FROM tasks WHERE id = ?
		ORDER BY bucket = ? DESC LIMIT 1`, id, model.BucketToday)
	if err != nil {
		return nil, fmt.Errorf("querying task %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("querying task %d: %w", id, err)
		}
		return nil, nil
	}

	task, err := scanTask(rows)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ReplaceProjects replaces the cached project list.
func (s *SQLiteStore) ReplaceProjects(ctx context.Context, projects []model.Project) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM projects"); err != nil {
		return fmt.Errorf("clearing projects: %w", err)
	}

	for _, p := range projects {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO projects (id, name, color, task_count)
			VALUES (?, ?, ?, ?)`,
			p.ID, p.Name, p.Color, p.TaskCount,
		)
		if err != nil {
			return fmt.Errorf("inserting project %d: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// GetProjects returns the cached projects ordered by name.
func (s *SQLiteStore) GetProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.SelectContext(ctx, &projects,
		"SELECT id, name, color, task_count AS taskcount FROM projects ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	return projects, nil
}

// CreateNotification inserts a new notification record.
func (s *SQLiteStore) CreateNotification(ctx context.Context, n model.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, task_id, message, read, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.TaskID, n.Message, boolToInt(n.Read), n.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	return nil
}

// GetUnreadNotifications retrieves all notifications that have not been read,
// ordered by creation time descending.
func (s *SQLiteStore) GetUnreadNotifications(ctx context.Context) ([]model.Notification, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM notifications WHERE read = 0 ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying unread notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkNotificationRead marks a single notification as read.
func (s *SQLiteStore) MarkNotificationRead(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("marking notification %s as read: %w", id, err)
	}
	return nil
}

// GetSetting returns the stored value for key, reporting absence via ok.
func (s *SQLiteStore) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading setting %q: %w", key, err)
	}
	return value, true, nil
}

// SetSetting writes a setting value, replacing any previous one.
func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing setting %q: %w", key, err)
	}
	return nil
}

// scanTask scans a task row from a sqlx.Rows result set.
func scanTask(rows *sqlx.Rows) (model.Task, error) {
	var (
		task        model.Task
		bucket      string
		projectID   sql.NullInt64
		isCompleted int
		completedAt sql.NullTime
		offsets     string
		createdAt   time.Time
		updatedAt   time.Time
		fetchedAt   time.Time
	)

	err := rows.Scan(
		&bucket, &task.ID, &projectID, &task.ProjectName, &task.ProjectColor,
		&task.Title, &task.Description, &task.Priority,
		&task.DueDate, &task.DueTime, &isCompleted, &completedAt,
		&offsets, &createdAt, &updatedAt, &fetchedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	if projectID.Valid {
		id := projectID.Int64
		task.ProjectID = &id
	}
	task.IsCompleted = isCompleted != 0
	if completedAt.Valid {
		t := completedAt.Time
		task.CompletedAt = &t
	}
	task.CreatedAt = createdAt
	task.UpdatedAt = updatedAt
	task.FetchedAt = fetchedAt

	if offsets != "" {
		if err := json.Unmarshal([]byte(offsets), &task.ReminderOffsets); err != nil {
			return model.Task{}, fmt.Errorf("unmarshaling reminder offsets: %w", err)
		}
	}

	return task, nil
}

// scanNotification scans a notification row from a sqlx.Rows result set.
func scanNotification(rows *sqlx.Rows) (model.Notification, error) {
	var (
		n         model.Notification
		readInt   int
		createdAt time.Time
	)

	err := rows.Scan(&n.ID, &n.TaskID, &n.Message, &readInt, &createdAt)
	if err != nil {
		return model.Notification{}, fmt.Errorf("scanning notification row: %w", err)
	}

	n.Read = readInt != 0
	n.CreatedAt = createdAt

	return n, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
