package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/danhawke/crewledger/internal/domain/ledger"
	"github.com/danhawke/crewledger/internal/repository"
	"github.com/google/uuid"
)

// Insert helpers for the upstream CRUD flows and test fixtures. Blank IDs
// are defaulted to a fresh UUID; the generated (or given) ID is returned.
// The aggregation services never call these.

func ensureID(id string) string {
	if strings.TrimSpace(id) == "" {
		return uuid.NewString()
	}
	return id
}

// InsertProject stores a project.
func (s *Store) InsertProject(ctx context.Context, proj ledger.Project) (string, error) {
	proj.ID = ensureID(proj.ID)
	if proj.CreatedAt.IsZero() {
		proj.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, budget_total, deadline, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		proj.ID, proj.Name, proj.BudgetTotal, proj.Deadline, proj.Status, proj.CreatedAt,
	)
	if err != nil {
		return "", repository.NewDataAccessError("insert project", err)
	}
	return proj.ID, nil
}

// InsertProfile stores a profile.
func (s *Store) InsertProfile(ctx context.Context, p ledger.Profile) (string, error) {
	p.ID = ensureID(p.ID)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, full_name, role, weekly_hours, billable_hourly_rate, internal_cost_per_hour)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.FullName, p.Role, p.WeeklyHours, p.BillableHourlyRate, p.InternalCostPerHour,
	)
	if err != nil {
		return "", repository.NewDataAccessError("insert profile", err)
	}
	return p.ID, nil
}

// InsertServiceModule stores a service module.
func (s *Store) InsertServiceModule(ctx context.Context, m ledger.ServiceModule) (string, error) {
	m.ID = ensureID(m.ID)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO service_modules (id, service_module, category, is_active)
		VALUES (?, ?, ?, ?)`,
		m.ID, m.Name, m.Category, m.IsActive,
	)
	if err != nil {
		return "", repository.NewDataAccessError("insert service module", err)
	}
	return m.ID, nil
}

// InsertTask stores a task.
func (s *Store) InsertTask(ctx context.Context, t ledger.Task) (string, error) {
	t.ID = ensureID(t.ID)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, project_id, title, service_module_id, assignee_id, estimated_hours, due_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Title, t.ServiceModuleID, t.AssigneeID, t.EstimatedHours, t.DueDate,
	)
	if err != nil {
		return "", repository.NewDataAccessError("insert task", err)
	}
	return t.ID, nil
}

// InsertTimeEntry stores a time entry. The partial unique index rejects a
// second running draft entry for the same (task, profile) pair.
func (s *Store) InsertTimeEntry(ctx context.Context, e ledger.TimeEntry) (string, error) {
	e.ID = ensureID(e.ID)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO time_entries (id, project_id, task_id, profile_id, start_time, end_time, duration_minutes, billable, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProjectID, e.TaskID, e.ProfileID, e.StartTime, e.EndTime, e.DurationMinutes, e.Billable, e.Status,
	)
	if err != nil {
		return "", repository.NewDataAccessError("insert time entry", err)
	}
	return e.ID, nil
}

// InsertCost stores a direct project cost.
func (s *Store) InsertCost(ctx context.Context, c ledger.Cost) (string, error) {
	c.ID = ensureID(c.ID)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO costs (id, project_id, amount, description, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.ProjectID, c.Amount, c.Description, c.CreatedAt,
	)
	if err != nil {
		return "", repository.NewDataAccessError("insert cost", err)
	}
	return c.ID, nil
}

// InsertFinancialDocument stores a financial document.
func (s *Store) InsertFinancialDocument(ctx context.Context, d ledger.FinancialDocument) (string, error) {
	d.ID = ensureID(d.ID)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO financial_documents (id, project_id, status)
		VALUES (?, ?, ?)`,
		d.ID, d.ProjectID, d.Status,
	)
	if err != nil {
		return "", repository.NewDataAccessError("insert financial document", err)
	}
	return d.ID, nil
}

// InsertFinancialItem stores a financial line item.
func (s *Store) InsertFinancialItem(ctx context.Context, it ledger.FinancialItem) (string, error) {
	it.ID = ensureID(it.ID)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO financial_items (id, document_id, service_module_id, total_price)
		VALUES (?, ?, ?, ?)`,
		it.ID, it.DocumentID, it.ServiceModuleID, it.TotalPrice,
	)
	if err != nil {
		return "", repository.NewDataAccessError("insert financial item", err)
	}
	return it.ID, nil
}

// InsertMembership stores a staffing assignment.
func (s *Store) InsertMembership(ctx context.Context, m ledger.ProjectMember) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO project_members (project_id, profile_id, role)
		VALUES (?, ?, ?)`,
		m.ProjectID, m.ProfileID, m.Role,
	)
	if err != nil {
		return repository.NewDataAccessError("insert membership", err)
	}
	return nil
}
