package variance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/danhawke/crewledger/internal/config"
	"github.com/danhawke/crewledger/internal/domain/ledger"
	"github.com/danhawke/crewledger/internal/repository"
)

// Service computes task plan-vs-actual variance.
type Service struct {
	repo   repository.RecordRepository
	cfg    config.EngineConfig
	logger *slog.Logger
}

// NewService creates a variance service.
func NewService(repo repository.RecordRepository, cfg config.EngineConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, cfg: cfg, logger: logger}
}

// TaskVariance compares a task's estimated hours/value against its logged
// actuals. It returns (nil, nil) when the task has no estimated
// hours or no resolvable planned rate, so callers can hide the widget
// instead of rendering zeros.
//
// The planned rate is the billable rate of the task's assignee; tasks
// without one fall back to the rate of the profile that logged the earliest
// completed entry.
func (s *Service) TaskVariance(ctx context.Context, taskID string) (*TaskVariance, error) {
	if err := ledger.ValidateID("task id", taskID); err != nil {
		return nil, err
	}
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}
	if task.EstimatedHours == nil {
		return nil, nil
	}

	entries, err := s.repo.TimeEntriesByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	profiles, err := s.profileIndex(ctx)
	if err != nil {
		return nil, err
	}

	completed := completedByStart(entries)

	estimatedRate, ok := s.plannedRate(task, completed, profiles)
	if !ok {
		return nil, nil
	}

	estimatedHours := *task.EstimatedHours
	plannedValue := estimatedHours * estimatedRate

	var actualHours, actualValue float64
	var actualRates []float64
	seen := make(map[float64]bool)
	for _, e := range completed {
		hours := e.Hours()
		rate := ledger.ResolveRates(profiles[e.ProfileID]).Billable
		actualHours += hours
		actualValue += hours * rate
		if !seen[rate] {
			seen[rate] = true
			actualRates = append(actualRates, rate)
		}
	}

	valueVariance := actualValue - plannedValue
	var variancePct float64
	if plannedValue > 0 {
		variancePct = valueVariance / plannedValue * 100
	}

	return &TaskVariance{
		TaskID:               task.ID,
		EstimatedHours:       estimatedHours,
		EstimatedRate:        estimatedRate,
		PlannedValue:         plannedValue,
		ActualHours:          actualHours,
		ActualValue:          actualValue,
		ActualRates:          actualRates,
		HoursVariance:        actualHours - estimatedHours,
		ValueVariance:        valueVariance,
		ValueVariancePercent: variancePct,
		Status:               s.classify(plannedValue, actualValue),
	}, nil
}

// classify applies the configured tolerance band (± percent of planned
// value): below the band is under budget, above is over, inside is on.
func (s *Service) classify(plannedValue, actualValue float64) BudgetStatus {
	tolerance := plannedValue * s.cfg.VarianceTolerance() / 100
	switch {
	case actualValue < plannedValue-tolerance:
		return UnderBudget
	case actualValue > plannedValue+tolerance:
		return OverBudget
	default:
		return OnBudget
	}
}

// plannedRate resolves the rate a task was planned at. Reports false when
// no rate source exists.
func (s *Service) plannedRate(task *ledger.Task, completed []ledger.TimeEntry, profiles map[string]*ledger.Profile) (float64, bool) {
	if task.AssigneeID != nil {
		if p, ok := profiles[*task.AssigneeID]; ok {
			return ledger.ResolveRates(p).Billable, true
		}
	}
	if len(completed) > 0 {
		return ledger.ResolveRates(profiles[completed[0].ProfileID]).Billable, true
	}
	return 0, false
}

// completedByStart filters to completed entries ordered by start time, so
// the fallback rate source is deterministic.
func completedByStart(entries []ledger.TimeEntry) []ledger.TimeEntry {
	completed := make([]ledger.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Completed() {
			completed = append(completed, e)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].StartTime.Before(completed[j].StartTime)
	})
	return completed
}

func (s *Service) profileIndex(ctx context.Context) (map[string]*ledger.Profile, error) {
	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	index := make(map[string]*ledger.Profile, len(profiles))
	for i := range profiles {
		index[profiles[i].ID] = &profiles[i]
	}
	return index, nil
}
