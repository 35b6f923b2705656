package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/danhawke/crewledger/internal/domain/ledger"
	"github.com/danhawke/crewledger/internal/repository"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// seedBasic creates one project, one profile, one service module and one
// task linked to the module.
func seedBasic(t *testing.T, store *Store) (projectID, profileID, moduleID, taskID string) {
	t.Helper()
	ctx := context.Background()

	projectID, err := store.InsertProject(ctx, ledger.Project{
		Name:        "Website Relaunch",
		BudgetTotal: ptr(10000.0),
		Status:      ledger.ProjectActive,
	})
	require.NoError(t, err)

	profileID, err = store.InsertProfile(ctx, ledger.Profile{
		FullName:            "Dana Mills",
		Role:                ledger.RoleEmployee,
		BillableHourlyRate:  ptr(100.0),
		InternalCostPerHour: ptr(50.0),
	})
	require.NoError(t, err)

	moduleID, err = store.InsertServiceModule(ctx, ledger.ServiceModule{
		Name:     "Design",
		Category: "creative",
		IsActive: true,
	})
	require.NoError(t, err)

	taskID, err = store.InsertTask(ctx, ledger.Task{
		ProjectID:       projectID,
		Title:           "Wireframes",
		ServiceModuleID: &moduleID,
		AssigneeID:      &profileID,
		EstimatedHours:  ptr(10.0),
	})
	require.NoError(t, err)

	return projectID, profileID, moduleID, taskID
}

func TestStore_GetProject(t *testing.T) {
	db := NewTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	projectID, _, _, _ := seedBasic(t, store)

	proj, err := store.GetProject(ctx, projectID)
	require.NoError(t, err)
	require.Equal(t, "Website Relaunch", proj.Name)
	require.NotNil(t, proj.BudgetTotal)
	require.Equal(t, 10000.0, *proj.BudgetTotal)
	require.Nil(t, proj.Deadline)

	_, err = store.GetProject(ctx, "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_ProfileNullableFields(t *testing.T) {
	db := NewTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	id, err := store.InsertProfile(ctx, ledger.Profile{
		FullName: "Freelancer Without Rates",
		Role:     ledger.RoleFreelancer,
	})
	require.NoError(t, err)

	p, err := store.GetProfile(ctx, id)
	require.NoError(t, err)
	require.Nil(t, p.WeeklyHours)
	require.Nil(t, p.BillableHourlyRate)
	require.Nil(t, p.InternalCostPerHour)
}

func TestStore_TimeEntryProjection(t *testing.T) {
	db := NewTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	projectID, profileID, moduleID, taskID := seedBasic(t, store)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	_, err := store.InsertTimeEntry(ctx, ledger.TimeEntry{
		ProjectID:       projectID,
		TaskID:          taskID,
		ProfileID:       profileID,
		StartTime:       start,
		EndTime:         &end,
		DurationMinutes: ptr(120.0),
		Billable:        true,
		Status:          ledger.EntryApproved,
	})
	require.NoError(t, err)

	// Running entry on the same task
	_, err = store.InsertTimeEntry(ctx, ledger.TimeEntry{
		ProjectID: projectID,
		TaskID:    taskID,
		ProfileID: profileID,
		StartTime: end,
		Billable:  true,
		Status:    ledger.EntryDraft,
	})
	require.NoError(t, err)

	entries, err := store.TimeEntriesByTask(ctx, taskID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The task's service module is resolved into the flat projection
	require.NotNil(t, entries[0].ServiceModuleID)
	require.Equal(t, moduleID, *entries[0].ServiceModuleID)
	require.True(t, entries[0].Completed())
	require.Equal(t, 2.0, entries[0].Hours())

	require.False(t, entries[1].Completed())
	require.Nil(t, entries[1].EndTime)
	require.Nil(t, entries[1].DurationMinutes)

	byService, err := store.TimeEntriesByService(ctx, moduleID)
	require.NoError(t, err)
	require.Len(t, byService, 2)

	byProject, err := store.TimeEntriesByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, byProject, 2)
}

func TestStore_RevenueItemProjection(t *testing.T) {
	db := NewTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	projectID, _, moduleID, _ := seedBasic(t, store)

	docID, err := store.InsertFinancialDocument(ctx, ledger.FinancialDocument{
		ProjectID: projectID,
		Status:    ledger.DocumentApproved,
	})
	require.NoError(t, err)

	_, err = store.InsertFinancialItem(ctx, ledger.FinancialItem{
		DocumentID:      docID,
		ServiceModuleID: &moduleID,
		TotalPrice:      5000,
	})
	require.NoError(t, err)
	_, err = store.InsertFinancialItem(ctx, ledger.FinancialItem{
		DocumentID: docID,
		TotalPrice: 750,
	})
	require.NoError(t, err)

	items, err := store.RevenueItemsByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	linked := 0
	for _, it := range items {
		require.Equal(t, projectID, it.ProjectID)
		require.Equal(t, ledger.DocumentApproved, it.Status)
		if it.ServiceModuleID != nil {
			linked++
			require.Equal(t, moduleID, *it.ServiceModuleID)
		}
	}
	require.Equal(t, 1, linked)

	all, err := store.ListRevenueItems(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestStore_ListServiceModules(t *testing.T) {
	db := NewTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	_, err := store.InsertServiceModule(ctx, ledger.ServiceModule{Name: "SEO", IsActive: true})
	require.NoError(t, err)
	_, err = store.InsertServiceModule(ctx, ledger.ServiceModule{Name: "Legacy Print", IsActive: false})
	require.NoError(t, err)
	_, err = store.InsertServiceModule(ctx, ledger.ServiceModule{Name: "Design", IsActive: true})
	require.NoError(t, err)

	active, err := store.ListServiceModules(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	// Insertion order preserved for stable report tie-breaks
	require.Equal(t, "SEO", active[0].Name)
	require.Equal(t, "Design", active[1].Name)

	all, err := store.ListServiceModules(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestStore_TasksAndMemberships(t *testing.T) {
	db := NewTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	projectID, profileID, _, taskID := seedBasic(t, store)

	err := store.InsertMembership(ctx, ledger.ProjectMember{
		ProjectID: projectID,
		ProfileID: profileID,
		Role:      "lead",
	})
	require.NoError(t, err)

	byAssignee, err := store.TasksByAssignee(ctx, profileID)
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)
	require.Equal(t, taskID, byAssignee[0].ID)

	byProject, err := store.TasksByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, byProject, 1)

	memberships, err := store.MembershipsByProfile(ctx, profileID)
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	require.Equal(t, "lead", memberships[0].Role)

	task, err := store.GetTask(ctx, taskID)
	require.NoError(t, err)
	require.NotNil(t, task.EstimatedHours)
	require.Equal(t, 10.0, *task.EstimatedHours)

	_, err = store.GetTask(ctx, "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_Costs(t *testing.T) {
	db := NewTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	projectID, _, _, _ := seedBasic(t, store)

	_, err := store.InsertCost(ctx, ledger.Cost{ProjectID: projectID, Amount: 2000, Description: "stock photos"})
	require.NoError(t, err)
	_, err = store.InsertCost(ctx, ledger.Cost{ProjectID: projectID, Amount: 150})
	require.NoError(t, err)

	costs, err := store.CostsByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, costs, 2)
	require.Equal(t, 2150.0, costs[0].Amount+costs[1].Amount)

	all, err := store.ListCosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
