package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/danhawke/crewledger/internal/domain/ledger"
	"github.com/danhawke/crewledger/internal/repository"
)

// GetProject retrieves a project by ID.
func (s *Store) GetProject(ctx context.Context, id string) (*ledger.Project, error) {
	query := `
		SELECT id, name, budget_total, deadline, status, created_at
		FROM projects
		WHERE id = ?
	`
	row := s.db.QueryRowContext(ctx, query, id)
	proj, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, repository.NewDataAccessError("get project", err)
	}
	return proj, nil
}

// ListProjects returns all projects ordered by creation time.
func (s *Store) ListProjects(ctx context.Context) ([]ledger.Project, error) {
	query := `
		SELECT id, name, budget_total, deadline, status, created_at
		FROM projects
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, repository.NewDataAccessError("list projects", err)
	}
	defer rows.Close()

	var projects []ledger.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, repository.NewDataAccessError("list projects", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.NewDataAccessError("list projects", err)
	}
	return projects, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*ledger.Project, error) {
	var proj ledger.Project
	var budget sql.NullFloat64
	var deadline sql.NullTime
	if err := row.Scan(&proj.ID, &proj.Name, &budget, &deadline, &proj.Status, &proj.CreatedAt); err != nil {
		return nil, err
	}
	proj.BudgetTotal = floatPtr(budget)
	proj.Deadline = timePtr(deadline)
	return &proj, nil
}

const taskColumns = `id, project_id, title, service_module_id, assignee_id, estimated_hours, due_date`

// GetTask retrieves a task by ID.
func (s *Store) GetTask(ctx context.Context, id string) (*ledger.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, repository.NewDataAccessError("get task", err)
	}
	return task, nil
}

// TasksByProject returns a project's tasks.
func (s *Store) TasksByProject(ctx context.Context, projectID string) ([]ledger.Task, error) {
	return s.queryTasks(ctx, "list project tasks",
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY id`, projectID)
}

// TasksByAssignee returns tasks assigned to a profile.
func (s *Store) TasksByAssignee(ctx context.Context, profileID string) ([]ledger.Task, error) {
	return s.queryTasks(ctx, "list assignee tasks",
		`SELECT `+taskColumns+` FROM tasks WHERE assignee_id = ? ORDER BY id`, profileID)
}

// ListTasks returns all tasks.
func (s *Store) ListTasks(ctx context.Context) ([]ledger.Task, error) {
	return s.queryTasks(ctx, "list tasks", `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
}

func (s *Store) queryTasks(ctx context.Context, op, query string, args ...any) ([]ledger.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, repository.NewDataAccessError(op, err)
	}
	defer rows.Close()

	var tasks []ledger.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, repository.NewDataAccessError(op, err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.NewDataAccessError(op, err)
	}
	return tasks, nil
}

func scanTask(row rowScanner) (*ledger.Task, error) {
	var task ledger.Task
	var serviceModuleID, assigneeID sql.NullString
	var estimated sql.NullFloat64
	var due sql.NullTime
	if err := row.Scan(&task.ID, &task.ProjectID, &task.Title, &serviceModuleID, &assigneeID, &estimated, &due); err != nil {
		return nil, err
	}
	task.ServiceModuleID = strPtr(serviceModuleID)
	task.AssigneeID = strPtr(assigneeID)
	task.EstimatedHours = floatPtr(estimated)
	task.DueDate = timePtr(due)
	return &task, nil
}

// GetProfile retrieves a profile by ID.
func (s *Store) GetProfile(ctx context.Context, id string) (*ledger.Profile, error) {
	query := `
		SELECT id, full_name, role, weekly_hours, billable_hourly_rate, internal_cost_per_hour
		FROM profiles
		WHERE id = ?
	`
	row := s.db.QueryRowContext(ctx, query, id)
	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, repository.NewDataAccessError("get profile", err)
	}
	return profile, nil
}

// ListProfiles returns all profiles.
func (s *Store) ListProfiles(ctx context.Context) ([]ledger.Profile, error) {
	query := `
		SELECT id, full_name, role, weekly_hours, billable_hourly_rate, internal_cost_per_hour
		FROM profiles
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, repository.NewDataAccessError("list profiles", err)
	}
	defer rows.Close()

	var profiles []ledger.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, repository.NewDataAccessError("list profiles", err)
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.NewDataAccessError("list profiles", err)
	}
	return profiles, nil
}

func scanProfile(row rowScanner) (*ledger.Profile, error) {
	var profile ledger.Profile
	var weekly, billable, internal sql.NullFloat64
	if err := row.Scan(&profile.ID, &profile.FullName, &profile.Role, &weekly, &billable, &internal); err != nil {
		return nil, err
	}
	profile.WeeklyHours = floatPtr(weekly)
	profile.BillableHourlyRate = floatPtr(billable)
	profile.InternalCostPerHour = floatPtr(internal)
	return &profile, nil
}

// MembershipsByProfile returns a profile's staffing assignments.
func (s *Store) MembershipsByProfile(ctx context.Context, profileID string) ([]ledger.ProjectMember, error) {
	return s.queryMemberships(ctx, "list profile memberships",
		`SELECT project_id, profile_id, role FROM project_members WHERE profile_id = ? ORDER BY project_id`, profileID)
}

// ListMemberships returns all staffing assignments.
func (s *Store) ListMemberships(ctx context.Context) ([]ledger.ProjectMember, error) {
	return s.queryMemberships(ctx, "list memberships",
		`SELECT project_id, profile_id, role FROM project_members ORDER BY project_id, profile_id`)
}

func (s *Store) queryMemberships(ctx context.Context, op, query string, args ...any) ([]ledger.ProjectMember, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, repository.NewDataAccessError(op, err)
	}
	defer rows.Close()

	var members []ledger.ProjectMember
	for rows.Next() {
		var m ledger.ProjectMember
		var role sql.NullString
		if err := rows.Scan(&m.ProjectID, &m.ProfileID, &role); err != nil {
			return nil, repository.NewDataAccessError(op, err)
		}
		m.Role = role.String
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.NewDataAccessError(op, err)
	}
	return members, nil
}
