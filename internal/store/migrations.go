package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	bucket           TEXT NOT NULL,
	id               INTEGER NOT NULL,
	project_id       INTEGER,
	project_name     TEXT NOT NULL DEFAULT '',
	project_color    TEXT NOT NULL DEFAULT '',
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	priority         TEXT NOT NULL DEFAULT 'MEDIUM',
	due_date         TEXT NOT NULL DEFAULT '',
	due_time         TEXT NOT NULL DEFAULT '',
	is_completed     INTEGER NOT NULL DEFAULT 0,
	completed_at     DATETIME,
	reminder_offsets TEXT NOT NULL DEFAULT '[]',
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME NOT NULL,
	fetched_at       DATETIME NOT NULL,
	PRIMARY KEY (bucket, id)
);

CREATE TABLE IF NOT EXISTS projects (
	id         INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL DEFAULT '',
	task_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	task_id    INTEGER NOT NULL,
	message    TEXT NOT NULL,
	read       INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due_date, due_time);
CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(read);
CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_notifications_task_id
	ON notifications(task_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
