package repository

import (
	"context"

	"github.com/danhawke/crewledger/internal/domain/ledger"
)

// RecordRepository provides typed read access to the raw operational
// records the calculators aggregate. Implementations do no business logic:
// each method is a fetch returning flat projections (joins are resolved
// into the DTO, never into nested shapes).
//
// Single-entity calculators use the targeted fetches; batch reports use the
// List* methods so each table is read once per request regardless of entity
// count.
type RecordRepository interface {
	GetProject(ctx context.Context, id string) (*ledger.Project, error)
	ListProjects(ctx context.Context) ([]ledger.Project, error)

	GetTask(ctx context.Context, id string) (*ledger.Task, error)
	TasksByProject(ctx context.Context, projectID string) ([]ledger.Task, error)
	TasksByAssignee(ctx context.Context, profileID string) ([]ledger.Task, error)
	ListTasks(ctx context.Context) ([]ledger.Task, error)

	GetProfile(ctx context.Context, id string) (*ledger.Profile, error)
	ListProfiles(ctx context.Context) ([]ledger.Profile, error)

	CostsByProject(ctx context.Context, projectID string) ([]ledger.Cost, error)
	ListCosts(ctx context.Context) ([]ledger.Cost, error)

	TimeEntriesByProject(ctx context.Context, projectID string) ([]ledger.TimeEntry, error)
	TimeEntriesByTask(ctx context.Context, taskID string) ([]ledger.TimeEntry, error)
	TimeEntriesByService(ctx context.Context, serviceModuleID string) ([]ledger.TimeEntry, error)
	ListTimeEntries(ctx context.Context) ([]ledger.TimeEntry, error)

	RevenueItemsByProject(ctx context.Context, projectID string) ([]ledger.RevenueItem, error)
	ListRevenueItems(ctx context.Context) ([]ledger.RevenueItem, error)

	ListServiceModules(ctx context.Context, activeOnly bool) ([]ledger.ServiceModule, error)

	MembershipsByProfile(ctx context.Context, profileID string) ([]ledger.ProjectMember, error)
	ListMemberships(ctx context.Context) ([]ledger.ProjectMember, error)
}
