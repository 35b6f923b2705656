package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// Migrate applies the schema. Raw records are written by upstream CRUD
// flows; the aggregation engine only reads them.
func (db *DB) Migrate() error {
	schema := `
-- Projects table
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    budget_total REAL,
    deadline TIMESTAMP,
    status TEXT NOT NULL CHECK(status IN ('planning', 'active', 'on_hold', 'completed', 'archived')),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_project_status ON projects(status);

-- Profiles table
CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    role TEXT NOT NULL CHECK(role IN ('admin', 'employee', 'freelancer', 'client')),
    weekly_hours REAL,
    billable_hourly_rate REAL,
    internal_cost_per_hour REAL
);

-- Service modules (billable work categories)
CREATE TABLE IF NOT EXISTS service_modules (
    id TEXT PRIMARY KEY,
    service_module TEXT NOT NULL,
    category TEXT,
    is_active INTEGER NOT NULL DEFAULT 1
);

-- Tasks table
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    title TEXT NOT NULL,
    service_module_id TEXT,
    assignee_id TEXT,
    estimated_hours REAL,
    due_date TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id),
    FOREIGN KEY (service_module_id) REFERENCES service_modules(id),
    FOREIGN KEY (assignee_id) REFERENCES profiles(id)
);
CREATE INDEX IF NOT EXISTS idx_project_tasks ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_assignee_tasks ON tasks(assignee_id);
CREATE INDEX IF NOT EXISTS idx_service_tasks ON tasks(service_module_id);

-- Time entries table
CREATE TABLE IF NOT EXISTS time_entries (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    task_id TEXT NOT NULL,
    profile_id TEXT NOT NULL,
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP,
    duration_minutes REAL,
    billable INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL CHECK(status IN ('draft', 'submitted', 'approved', 'rejected')),
    FOREIGN KEY (project_id) REFERENCES projects(id),
    FOREIGN KEY (task_id) REFERENCES tasks(id),
    FOREIGN KEY (profile_id) REFERENCES profiles(id)
);
CREATE INDEX IF NOT EXISTS idx_project_entries ON time_entries(project_id);
CREATE INDEX IF NOT EXISTS idx_task_entries ON time_entries(task_id);
CREATE INDEX IF NOT EXISTS idx_profile_entries ON time_entries(profile_id);

-- One running draft entry per (task, profile) pair
CREATE UNIQUE INDEX IF NOT EXISTS idx_running_entry
    ON time_entries(task_id, profile_id)
    WHERE end_time IS NULL AND status = 'draft';

-- Direct project costs
CREATE TABLE IF NOT EXISTS costs (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    amount REAL NOT NULL CHECK(amount >= 0),
    description TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE INDEX IF NOT EXISTS idx_project_costs ON costs(project_id);

-- Financial documents (invoices, quotes)
CREATE TABLE IF NOT EXISTS financial_documents (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('draft', 'sent', 'approved', 'paid', 'cancelled')),
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE INDEX IF NOT EXISTS idx_project_documents ON financial_documents(project_id);

-- Financial line items
CREATE TABLE IF NOT EXISTS financial_items (
    id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL,
    service_module_id TEXT,
    total_price REAL NOT NULL,
    FOREIGN KEY (document_id) REFERENCES financial_documents(id),
    FOREIGN KEY (service_module_id) REFERENCES service_modules(id)
);
CREATE INDEX IF NOT EXISTS idx_document_items ON financial_items(document_id);

-- Staffing assignments (many-to-many)
CREATE TABLE IF NOT EXISTS project_members (
    project_id TEXT NOT NULL,
    profile_id TEXT NOT NULL,
    role TEXT,
    PRIMARY KEY (project_id, profile_id),
    FOREIGN KEY (project_id) REFERENCES projects(id),
    FOREIGN KEY (profile_id) REFERENCES profiles(id)
);
`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
