package sqlite

import (
	"context"
	"database/sql"

	"github.com/danhawke/crewledger/internal/domain/ledger"
	"github.com/danhawke/crewledger/internal/repository"
)

// CostsByProject returns a project's direct costs.
func (s *Store) CostsByProject(ctx context.Context, projectID string) ([]ledger.Cost, error) {
	return s.queryCosts(ctx, "list project costs",
		`SELECT id, project_id, amount, description, created_at FROM costs WHERE project_id = ? ORDER BY created_at, id`,
		projectID)
}

// ListCosts returns all direct costs.
func (s *Store) ListCosts(ctx context.Context) ([]ledger.Cost, error) {
	return s.queryCosts(ctx, "list costs",
		`SELECT id, project_id, amount, description, created_at FROM costs ORDER BY created_at, id`)
}

func (s *Store) queryCosts(ctx context.Context, op, query string, args ...any) ([]ledger.Cost, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, repository.NewDataAccessError(op, err)
	}
	defer rows.Close()

	var costs []ledger.Cost
	for rows.Next() {
		var c ledger.Cost
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Amount, &description, &c.CreatedAt); err != nil {
			return nil, repository.NewDataAccessError(op, err)
		}
		c.Description = description.String
		costs = append(costs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.NewDataAccessError(op, err)
	}
	return costs, nil
}

// Time entries are projected flat: the task's service module is resolved in
// the query so calculators never join shapes themselves.
const timeEntrySelect = `
	SELECT te.id, te.project_id, te.task_id, te.profile_id, t.service_module_id,
	       te.start_time, te.end_time, te.duration_minutes, te.billable, te.status
	FROM time_entries te
	LEFT JOIN tasks t ON t.id = te.task_id
`

// TimeEntriesByProject returns a project's time entries.
func (s *Store) TimeEntriesByProject(ctx context.Context, projectID string) ([]ledger.TimeEntry, error) {
	return s.queryTimeEntries(ctx, "list project time entries",
		timeEntrySelect+` WHERE te.project_id = ? ORDER BY te.start_time, te.id`, projectID)
}

// TimeEntriesByTask returns a task's time entries.
func (s *Store) TimeEntriesByTask(ctx context.Context, taskID string) ([]ledger.TimeEntry, error) {
	return s.queryTimeEntries(ctx, "list task time entries",
		timeEntrySelect+` WHERE te.task_id = ? ORDER BY te.start_time, te.id`, taskID)
}

// TimeEntriesByService returns time entries whose task belongs to a service
// module.
func (s *Store) TimeEntriesByService(ctx context.Context, serviceModuleID string) ([]ledger.TimeEntry, error) {
	return s.queryTimeEntries(ctx, "list service time entries",
		timeEntrySelect+` WHERE t.service_module_id = ? ORDER BY te.start_time, te.id`, serviceModuleID)
}

// ListTimeEntries returns all time entries.
func (s *Store) ListTimeEntries(ctx context.Context) ([]ledger.TimeEntry, error) {
	return s.queryTimeEntries(ctx, "list time entries",
		timeEntrySelect+` ORDER BY te.start_time, te.id`)
}

func (s *Store) queryTimeEntries(ctx context.Context, op, query string, args ...any) ([]ledger.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, repository.NewDataAccessError(op, err)
	}
	defer rows.Close()

	var entries []ledger.TimeEntry
	for rows.Next() {
		var e ledger.TimeEntry
		var serviceModuleID sql.NullString
		var endTime sql.NullTime
		var duration sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.TaskID, &e.ProfileID, &serviceModuleID,
			&e.StartTime, &endTime, &duration, &e.Billable, &e.Status); err != nil {
			return nil, repository.NewDataAccessError(op, err)
		}
		e.ServiceModuleID = strPtr(serviceModuleID)
		e.EndTime = timePtr(endTime)
		e.DurationMinutes = floatPtr(duration)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.NewDataAccessError(op, err)
	}
	return entries, nil
}
