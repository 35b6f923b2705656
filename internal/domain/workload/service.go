package workload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/danhawke/crewledger/internal/config"
	"github.com/danhawke/crewledger/internal/domain/ledger"
	"github.com/danhawke/crewledger/internal/repository"
)

// Service computes staff utilization and assignment feasibility.
type Service struct {
	repo   repository.RecordRepository
	cfg    config.EngineConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a workload service.
func NewService(repo repository.RecordRepository, cfg config.EngineConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, cfg: cfg, logger: logger, now: time.Now}
}

// Workload computes a profile's planned-hours utilization against weekly
// capacity over a date window.
func (s *Service) Workload(ctx context.Context, profileID string, win ledger.Window) (*Summary, error) {
	if err := ledger.ValidateID("profile id", profileID); err != nil {
		return nil, err
	}
	if err := ledger.ValidateWindow(win); err != nil {
		return nil, err
	}

	profile, err := s.repo.GetProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	memberships, err := s.repo.MembershipsByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}
	tasks, err := s.repo.TasksByAssignee(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	projects, err := s.projectIndex(ctx)
	if err != nil {
		return nil, err
	}

	return s.summarize(profile, win, memberships, tasks, projects), nil
}

// WorkloadBatch computes summaries for a set of profiles in one pass over
// each raw table. Unknown profile ids are omitted from the result.
func (s *Service) WorkloadBatch(ctx context.Context, profileIDs []string, win ledger.Window) (map[string]*Summary, error) {
	if err := ledger.ValidateWindow(win); err != nil {
		return nil, err
	}
	for _, id := range profileIDs {
		if err := ledger.ValidateID("profile id", id); err != nil {
			return nil, err
		}
	}

	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	memberships, err := s.repo.ListMemberships(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	projects, err := s.projectIndex(ctx)
	if err != nil {
		return nil, err
	}

	profileByID := make(map[string]*ledger.Profile, len(profiles))
	for i := range profiles {
		profileByID[profiles[i].ID] = &profiles[i]
	}
	membershipsByProfile := make(map[string][]ledger.ProjectMember)
	for _, m := range memberships {
		membershipsByProfile[m.ProfileID] = append(membershipsByProfile[m.ProfileID], m)
	}
	tasksByAssignee := make(map[string][]ledger.Task)
	for _, t := range tasks {
		if t.AssigneeID != nil {
			tasksByAssignee[*t.AssigneeID] = append(tasksByAssignee[*t.AssigneeID], t)
		}
	}

	summaries := make(map[string]*Summary, len(profileIDs))
	for _, id := range profileIDs {
		profile, ok := profileByID[id]
		if !ok {
			continue
		}
		summaries[id] = s.summarize(profile, win, membershipsByProfile[id], tasksByAssignee[id], projects)
	}
	return summaries, nil
}

// CheckAssignment advises whether adding a profile to a project would push
// utilization past the threshold. A non-positive threshold uses the
// configured default. The hypothetical extra load is the estimated hours of
// the project's unassigned tasks; when none exist the verdict falls back to
// current utilization with an explanatory reason.
func (s *Service) CheckAssignment(ctx context.Context, profileID, projectID string, thresholdPercent float64) (*Advice, error) {
	if err := ledger.ValidateID("profile id", profileID); err != nil {
		return nil, err
	}
	if err := ledger.ValidateID("project id", projectID); err != nil {
		return nil, err
	}
	if thresholdPercent <= 0 {
		thresholdPercent = s.cfg.UtilizationThresholdPercent
	}

	from := s.now()
	win := ledger.Window{From: from, To: from.AddDate(0, 0, s.cfg.WorkloadWindowDays)}

	current, err := s.Workload(ctx, profileID, win)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}
	tasks, err := s.repo.TasksByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	var additional float64
	for _, t := range tasks {
		if t.AssigneeID == nil {
			additional += ledger.OrDefault(t.EstimatedHours, 0)
		}
	}

	advice := &Advice{
		CurrentUtilization:   current.UtilizationPercent,
		ProjectedUtilization: current.UtilizationPercent,
		ThresholdPercent:     thresholdPercent,
	}

	if additional <= 0 {
		advice.CanAssign = current.UtilizationPercent <= thresholdPercent
		advice.Reason = "project has no unassigned estimated work; based on current utilization only"
		return advice, nil
	}

	if current.CapacityHours > 0 {
		advice.ProjectedUtilization = (current.TotalPlannedHours + additional) / current.CapacityHours * 100
	}
	advice.CanAssign = advice.ProjectedUtilization <= thresholdPercent
	if !advice.CanAssign {
		advice.Reason = fmt.Sprintf("projected utilization %.1f%% exceeds threshold %.1f%%",
			advice.ProjectedUtilization, thresholdPercent)
	}
	return advice, nil
}

// summarize reduces a profile's assignments to a utilization summary. A
// task counts when its project is currently staffable (planning or active,
// deadline not already past when the window opens) and its due date is
// unset or falls inside the window.
func (s *Service) summarize(profile *ledger.Profile, win ledger.Window, memberships []ledger.ProjectMember, tasks []ledger.Task, projects map[string]*ledger.Project) *Summary {
	assignedProjects := 0
	for _, m := range memberships {
		if projectCurrent(projects[m.ProjectID], win) {
			assignedProjects++
		}
	}

	assignedTasks := 0
	var planned float64
	for _, t := range tasks {
		if !projectCurrent(projects[t.ProjectID], win) {
			continue
		}
		if t.DueDate != nil && !win.Contains(*t.DueDate) {
			continue
		}
		assignedTasks++
		planned += ledger.OrDefault(t.EstimatedHours, 0)
	}

	weekly := ledger.WeeklyHours(profile, s.cfg.DefaultWeeklyHours)
	capacity := weekly * win.Days() / 7

	var utilization float64
	if capacity > 0 {
		utilization = planned / capacity * 100
	}

	return &Summary{
		ProfileID:          profile.ID,
		Window:             win,
		AssignedProjects:   assignedProjects,
		AssignedTasks:      assignedTasks,
		TotalPlannedHours:  planned,
		WeeklyHours:        weekly,
		CapacityHours:      capacity,
		UtilizationPercent: utilization,
	}
}

// projectCurrent reports whether a project still carries workload for the
// window: planning or active, and its deadline (when set) has not passed
// before the window opens.
func projectCurrent(p *ledger.Project, win ledger.Window) bool {
	if p == nil {
		return false
	}
	if p.Status != ledger.ProjectActive && p.Status != ledger.ProjectPlanning {
		return false
	}
	return p.Deadline == nil || !p.Deadline.Before(win.From)
}

func (s *Service) projectIndex(ctx context.Context) (map[string]*ledger.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	index := make(map[string]*ledger.Project, len(projects))
	for i := range projects {
		index[projects[i].ID] = &projects[i]
	}
	return index, nil
}
