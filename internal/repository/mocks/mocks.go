package mocks

import (
	"context"

	"github.com/danhawke/crewledger/internal/domain/ledger"
	"github.com/stretchr/testify/mock"
)

// RecordRepository is a mock for repository.RecordRepository.
type RecordRepository struct {
	mock.Mock
}

func (m *RecordRepository) GetProject(ctx context.Context, id string) (*ledger.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*ledger.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) ListProjects(ctx context.Context) ([]ledger.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]ledger.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) GetTask(ctx context.Context, id string) (*ledger.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*ledger.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) TasksByProject(ctx context.Context, projectID string) ([]ledger.Task, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]ledger.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) TasksByAssignee(ctx context.Context, profileID string) ([]ledger.Task, error) {
	args := m.Called(ctx, profileID)
	if list, ok := args.Get(0).([]ledger.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) ListTasks(ctx context.Context) ([]ledger.Task, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]ledger.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) GetProfile(ctx context.Context, id string) (*ledger.Profile, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*ledger.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) ListProfiles(ctx context.Context) ([]ledger.Profile, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]ledger.Profile); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) CostsByProject(ctx context.Context, projectID string) ([]ledger.Cost, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]ledger.Cost); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) ListCosts(ctx context.Context) ([]ledger.Cost, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]ledger.Cost); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) TimeEntriesByProject(ctx context.Context, projectID string) ([]ledger.TimeEntry, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]ledger.TimeEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) TimeEntriesByTask(ctx context.Context, taskID string) ([]ledger.TimeEntry, error) {
	args := m.Called(ctx, taskID)
	if list, ok := args.Get(0).([]ledger.TimeEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) TimeEntriesByService(ctx context.Context, serviceModuleID string) ([]ledger.TimeEntry, error) {
	args := m.Called(ctx, serviceModuleID)
	if list, ok := args.Get(0).([]ledger.TimeEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) ListTimeEntries(ctx context.Context) ([]ledger.TimeEntry, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]ledger.TimeEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) RevenueItemsByProject(ctx context.Context, projectID string) ([]ledger.RevenueItem, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]ledger.RevenueItem); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) ListRevenueItems(ctx context.Context) ([]ledger.RevenueItem, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]ledger.RevenueItem); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) ListServiceModules(ctx context.Context, activeOnly bool) ([]ledger.ServiceModule, error) {
	args := m.Called(ctx, activeOnly)
	if list, ok := args.Get(0).([]ledger.ServiceModule); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) MembershipsByProfile(ctx context.Context, profileID string) ([]ledger.ProjectMember, error) {
	args := m.Called(ctx, profileID)
	if list, ok := args.Get(0).([]ledger.ProjectMember); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) ListMemberships(ctx context.Context) ([]ledger.ProjectMember, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]ledger.ProjectMember); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
