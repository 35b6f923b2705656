package variance_test

import (
	"context"
	"testing"
	"time"

	"github.com/danhawke/crewledger/internal/config"
	"github.com/danhawke/crewledger/internal/domain/ledger"
	"github.com/danhawke/crewledger/internal/domain/variance"
	"github.com/danhawke/crewledger/internal/repository"
	"github.com/danhawke/crewledger/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newService(repo repository.RecordRepository) *variance.Service {
	return variance.NewService(repo, config.DefaultEngine(), nil)
}

func entryAt(profileID string, start time.Time, minutes float64) ledger.TimeEntry {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return ledger.TimeEntry{
		ProjectID:       "p1",
		TaskID:          "t1",
		ProfileID:       profileID,
		StartTime:       start,
		EndTime:         &end,
		DurationMinutes: &minutes,
		Billable:        true,
		Status:          ledger.EntryApproved,
	}
}

// Estimated 10h at the assignee's rate of 80 plans 800. Actuals of 4h at 80
// and 2h at 100 come to 6h / 520: 4 hours and 280 under, -35%.
func TestTaskVariance_UnderBudget(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	repo := &mocks.RecordRepository{}
	repo.On("GetTask", ctx, "t1").Return(&ledger.Task{
		ID: "t1", ProjectID: "p1", AssigneeID: ptr("u1"), EstimatedHours: ptr(10.0),
	}, nil)
	repo.On("TimeEntriesByTask", ctx, "t1").Return([]ledger.TimeEntry{
		entryAt("u2", base.Add(24*time.Hour), 120),
		entryAt("u1", base, 240),
	}, nil)
	repo.On("ListProfiles", ctx).Return([]ledger.Profile{
		{ID: "u1", BillableHourlyRate: ptr(80.0)},
		{ID: "u2", BillableHourlyRate: ptr(100.0)},
	}, nil)

	svc := newService(repo)
	v, err := svc.TaskVariance(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, v)

	require.Equal(t, 10.0, v.EstimatedHours)
	require.Equal(t, 80.0, v.EstimatedRate)
	require.Equal(t, 800.0, v.PlannedValue)
	require.Equal(t, 6.0, v.ActualHours)
	require.Equal(t, 520.0, v.ActualValue)
	require.Equal(t, -4.0, v.HoursVariance)
	require.Equal(t, -280.0, v.ValueVariance)
	require.Equal(t, -35.0, v.ValueVariancePercent)
	require.Equal(t, variance.UnderBudget, v.Status)
	// distinct rates in earliest-entry order
	require.Equal(t, []float64{80, 100}, v.ActualRates)
}

// 9.5h at 80 is 760, exactly the lower edge of the ±5% band around 800.
// The band is inclusive, so this is on budget, not under.
func TestTaskVariance_ToleranceBoundary(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	repo := &mocks.RecordRepository{}
	repo.On("GetTask", ctx, "t1").Return(&ledger.Task{
		ID: "t1", ProjectID: "p1", AssigneeID: ptr("u1"), EstimatedHours: ptr(10.0),
	}, nil)
	repo.On("TimeEntriesByTask", ctx, "t1").Return([]ledger.TimeEntry{
		entryAt("u1", base, 570),
	}, nil)
	repo.On("ListProfiles", ctx).Return([]ledger.Profile{
		{ID: "u1", BillableHourlyRate: ptr(80.0)},
	}, nil)

	svc := newService(repo)
	v, err := svc.TaskVariance(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, 760.0, v.ActualValue)
	require.Equal(t, variance.OnBudget, v.Status)
}

// A zero tolerance configures a strict band: any shortfall, even one inside
// the default ±5%, classifies as under budget.
func TestTaskVariance_ZeroTolerance(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	repo := &mocks.RecordRepository{}
	repo.On("GetTask", ctx, "t1").Return(&ledger.Task{
		ID: "t1", ProjectID: "p1", AssigneeID: ptr("u1"), EstimatedHours: ptr(10.0),
	}, nil)
	repo.On("TimeEntriesByTask", ctx, "t1").Return([]ledger.TimeEntry{
		entryAt("u1", base, 570),
	}, nil)
	repo.On("ListProfiles", ctx).Return([]ledger.Profile{
		{ID: "u1", BillableHourlyRate: ptr(80.0)},
	}, nil)

	cfg := config.DefaultEngine()
	cfg.VarianceTolerancePercent = ptr(0.0)
	svc := variance.NewService(repo, cfg, nil)

	v, err := svc.TaskVariance(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, 760.0, v.ActualValue)
	require.Equal(t, variance.UnderBudget, v.Status)
}

func TestTaskVariance_OverBudget(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	repo := &mocks.RecordRepository{}
	repo.On("GetTask", ctx, "t1").Return(&ledger.Task{
		ID: "t1", ProjectID: "p1", AssigneeID: ptr("u1"), EstimatedHours: ptr(10.0),
	}, nil)
	repo.On("TimeEntriesByTask", ctx, "t1").Return([]ledger.TimeEntry{
		entryAt("u1", base, 720),
	}, nil)
	repo.On("ListProfiles", ctx).Return([]ledger.Profile{
		{ID: "u1", BillableHourlyRate: ptr(80.0)},
	}, nil)

	svc := newService(repo)
	v, err := svc.TaskVariance(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, v)
	// 12h at 80 is 960, above 800 + 5%
	require.Equal(t, 960.0, v.ActualValue)
	require.Equal(t, 2.0, v.HoursVariance)
	require.Equal(t, 20.0, v.ValueVariancePercent)
	require.Equal(t, variance.OverBudget, v.Status)
}

// Without an assignee the planned rate falls back to the profile behind the
// earliest completed entry.
func TestTaskVariance_RateFallbackToEarliestEntry(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	repo := &mocks.RecordRepository{}
	repo.On("GetTask", ctx, "t1").Return(&ledger.Task{
		ID: "t1", ProjectID: "p1", EstimatedHours: ptr(5.0),
	}, nil)
	repo.On("TimeEntriesByTask", ctx, "t1").Return([]ledger.TimeEntry{
		entryAt("u2", base.Add(time.Hour), 60),
		entryAt("u1", base, 60),
	}, nil)
	repo.On("ListProfiles", ctx).Return([]ledger.Profile{
		{ID: "u1", BillableHourlyRate: ptr(60.0)},
		{ID: "u2", BillableHourlyRate: ptr(90.0)},
	}, nil)

	svc := newService(repo)
	v, err := svc.TaskVariance(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, 60.0, v.EstimatedRate)
	require.Equal(t, 300.0, v.PlannedValue)
}

func TestTaskVariance_NoEstimate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.RecordRepository{}
	repo.On("GetTask", ctx, "t1").Return(&ledger.Task{
		ID: "t1", ProjectID: "p1", AssigneeID: ptr("u1"),
	}, nil)

	svc := newService(repo)
	v, err := svc.TaskVariance(ctx, "t1")
	require.NoError(t, err)
	require.Nil(t, v)
	repo.AssertNotCalled(t, "TimeEntriesByTask", ctx, "t1")
}

func TestTaskVariance_NoRateSource(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.RecordRepository{}
	repo.On("GetTask", ctx, "t1").Return(&ledger.Task{
		ID: "t1", ProjectID: "p1", EstimatedHours: ptr(8.0),
	}, nil)
	repo.On("TimeEntriesByTask", ctx, "t1").Return([]ledger.TimeEntry{}, nil)
	repo.On("ListProfiles", ctx).Return([]ledger.Profile{}, nil)

	svc := newService(repo)
	v, err := svc.TaskVariance(ctx, "t1")
	require.NoError(t, err)
	require.Nil(t, v)
}

// A running entry neither counts toward actuals nor supplies a fallback rate.
func TestTaskVariance_RunningEntriesIgnored(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	running := ledger.TimeEntry{
		ProjectID: "p1", TaskID: "t1", ProfileID: "u2",
		StartTime: base.Add(-time.Hour), Status: ledger.EntryDraft,
	}
	repo := &mocks.RecordRepository{}
	repo.On("GetTask", ctx, "t1").Return(&ledger.Task{
		ID: "t1", ProjectID: "p1", AssigneeID: ptr("u1"), EstimatedHours: ptr(2.0),
	}, nil)
	repo.On("TimeEntriesByTask", ctx, "t1").Return([]ledger.TimeEntry{
		running,
		entryAt("u1", base, 60),
	}, nil)
	repo.On("ListProfiles", ctx).Return([]ledger.Profile{
		{ID: "u1", BillableHourlyRate: ptr(80.0)},
		{ID: "u2", BillableHourlyRate: ptr(500.0)},
	}, nil)

	svc := newService(repo)
	v, err := svc.TaskVariance(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, 1.0, v.ActualHours)
	require.Equal(t, 80.0, v.ActualValue)
	require.Equal(t, []float64{80}, v.ActualRates)
}

func TestTaskVariance_InvalidID(t *testing.T) {
	svc := newService(&mocks.RecordRepository{})
	_, err := svc.TaskVariance(context.Background(), "")
	require.ErrorIs(t, err, ledger.ErrInvalidInput)
}

func TestTaskVariance_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.RecordRepository{}
	repo.On("GetTask", ctx, "missing").Return((*ledger.Task)(nil), repository.ErrNotFound)

	svc := newService(repo)
	_, err := svc.TaskVariance(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
