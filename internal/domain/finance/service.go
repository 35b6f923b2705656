package finance

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

// Service computes financial aggregates from raw records. It holds no state
// beyond its collaborators: every call recomputes from the current snapshot
// and never mutates source records.
type Service struct {
	repo   repository.RecordRepository
	cfg    config.EngineConfig
	logger *slog.Logger
}

// NewService creates a finance service.
func NewService(repo repository.RecordRepository, cfg config.EngineConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, cfg: cfg, logger: logger}
}

// CostsForProject sums direct costs booked against a project.
func (s *Service) CostsForProject(ctx context.Context, projectID string) (float64, error) {
	if err := ledger.ValidateID("project id", projectID); err != nil {
		return 0, err
	}
	costs, err := s.repo.CostsByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("listing costs: %w", err)
	}
	return sumCosts(costs), nil
}

// LaborCostForService computes internal labor cost (hours × internal rate)
// across all completed time entries linked to a service module.
func (s *Service) LaborCostForService(ctx context.Context, serviceModuleID string) (float64, error) {
	if err := ledger.ValidateID("service module id", serviceModuleID); err != nil {
		return 0, err
	}
	entries, err := s.repo.TimeEntriesByService(ctx, serviceModuleID)
	if err != nil {
		return 0, fmt.Errorf("listing time entries: %w", err)
	}
	profiles, err := s.profileIndex(ctx)
	if err != nil {
		return 0, err
	}
	cost, _, _ := laborFigures(entries, profiles)
	return cost, nil
}

// RevenueForProject sums recognized revenue booked against a project.
func (s *Service) RevenueForProject(ctx context.Context, projectID string) (float64, error) {
	if err := ledger.ValidateID("project id", projectID); err != nil {
		return 0, err
	}
	items, err := s.repo.RevenueItemsByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("listing revenue items: %w", err)
	}
	var total float64
	for _, it := range items {
		if s.cfg.Recognized(it.Status) {
			total += it.TotalPrice
		}
	}
	return total, nil
}

// RevenueForService sums recognized revenue attributed to a service module.
// Items without a service module link are excluded.
func (s *Service) RevenueForService(ctx context.Context, serviceModuleID string) (float64, error) {
	if err := ledger.ValidateID("service module id", serviceModuleID); err != nil {
		return 0, err
	}
	items, err := s.repo.ListRevenueItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing revenue items: %w", err)
	}
	var total float64
	for _, it := range items {
		if it.ServiceModuleID == nil || *it.ServiceModuleID != serviceModuleID {
			continue
		}
		if s.cfg.Recognized(it.Status) {
			total += it.TotalPrice
		}
	}
	return total, nil
}

// ServiceReport computes profitability for every active service module.
// Each raw table is fetched once and grouped in memory. Rows are sorted by
// profit descending; ties keep the store's module order.
func (s *Service) ServiceReport(ctx context.Context) ([]ServiceProfitability, error) {
	modules, err := s.repo.ListServiceModules(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing service modules: %w", err)
	}
	entries, err := s.repo.ListTimeEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	items, err := s.repo.ListRevenueItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing revenue items: %w", err)
	}
	profiles, err := s.profileIndex(ctx)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		cost    float64
		hours   float64
		entries int
		revenue float64
	}
	buckets := make(map[string]*bucket, len(modules))
	for _, m := range modules {
		buckets[m.ID] = &bucket{}
	}

	for _, e := range entries {
		if e.ServiceModuleID == nil || !e.Completed() {
			continue
		}
		b, ok := buckets[*e.ServiceModuleID]
		if !ok {
			continue
		}
		hours := e.Hours()
		b.cost += hours * ledger.ResolveRates(profiles[e.ProfileID]).Internal
		b.hours += hours
		b.entries++
	}

	for _, it := range items {
		if it.ServiceModuleID == nil || !s.cfg.Recognized(it.Status) {
			continue
		}
		if b, ok := buckets[*it.ServiceModuleID]; ok {
			b.revenue += it.TotalPrice
		}
	}

	report := make([]ServiceProfitability, 0, len(modules))
	for _, m := range modules {
		b := buckets[m.ID]
		profit := b.revenue - b.cost
		report = append(report, ServiceProfitability{
			ServiceModuleID: m.ID,
			Name:            m.Name,
			Category:        m.Category,
			Revenue:         b.revenue,
			Cost:            b.cost,
			Profit:          profit,
			MarginPercent:   marginPercent(profit, b.revenue),
			HoursTracked:    b.hours,
			EntryCount:      b.entries,
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Profit > report[j].Profit
	})

	s.logger.Debug("service report computed", "modules", len(report))
	return report, nil
}

// ProjectOverview computes a project's spend against its budget.
func (s *Service) ProjectOverview(ctx context.Context, projectID string) (*ProjectOverview, error) {
	ov, _, err := s.overviewForProject(ctx, projectID)
	return ov, err
}

func (s *Service) overviewForProject(ctx context.Context, projectID string) (*ProjectOverview, *ledger.Project, error) {
	if err := ledger.ValidateID("project id", projectID); err != nil {
		return nil, nil, err
	}
	proj, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("getting project: %w", err)
	}
	costs, err := s.repo.CostsByProject(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing costs: %w", err)
	}
	entries, err := s.repo.TimeEntriesByProject(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing time entries: %w", err)
	}
	profiles, err := s.profileIndex(ctx)
	if err != nil {
		return nil, nil, err
	}

	return s.buildOverview(proj, costs, entries, profiles), proj, nil
}

func (s *Service) buildOverview(proj *ledger.Project, costs []ledger.Cost, entries []ledger.TimeEntry, profiles map[string]*ledger.Profile) *ProjectOverview {
	direct := sumCosts(costs)
	labor, billable, _ := laborFigures(entries, profiles)

	totalCosts := direct + labor
	total := totalCosts + billable
	budget := ledger.OrDefault(proj.BudgetTotal, 0)

	var ratio, progress float64
	if budget > 0 {
		ratio = total / budget
		progress = ratio
		if progress > 1 {
			progress = 1
		}
		progress *= 100
	}

	return &ProjectOverview{
		ProjectID:       proj.ID,
		DirectCosts:     direct,
		LaborCost:       labor,
		Costs:           totalCosts,
		BillableValue:   billable,
		Total:           total,
		BudgetTotal:     budget,
		ProgressPercent: progress,
		BudgetRatio:     ratio,
	}
}

// ProjectMargin derives a project's profit, margin percent and severity tier.
func (s *Service) ProjectMargin(ctx context.Context, projectID string) (*ProjectMargin, error) {
	ov, proj, err := s.overviewForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	m := marginFromOverview(ov)
	m.Name = proj.Name
	return m, nil
}

// MarginReport computes margins for every project in one pass over the raw
// tables.
func (s *Service) MarginReport(ctx context.Context) ([]ProjectMargin, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	costs, err := s.repo.ListCosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing costs: %w", err)
	}
	entries, err := s.repo.ListTimeEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	profiles, err := s.profileIndex(ctx)
	if err != nil {
		return nil, err
	}

	costsByProject := make(map[string][]ledger.Cost)
	for _, c := range costs {
		costsByProject[c.ProjectID] = append(costsByProject[c.ProjectID], c)
	}
	entriesByProject := make(map[string][]ledger.TimeEntry)
	for _, e := range entries {
		entriesByProject[e.ProjectID] = append(entriesByProject[e.ProjectID], e)
	}

	report := make([]ProjectMargin, 0, len(projects))
	for i := range projects {
		proj := &projects[i]
		ov := s.buildOverview(proj, costsByProject[proj.ID], entriesByProject[proj.ID], profiles)
		m := marginFromOverview(ov)
		m.Name = proj.Name
		report = append(report, *m)
	}

	s.logger.Debug("margin report computed", "projects", len(report))
	return report, nil
}

func marginFromOverview(ov *ProjectOverview) *ProjectMargin {
	profit := ov.BillableValue - ov.Costs
	pct := marginPercent(profit, ov.BillableValue)
	return &ProjectMargin{
		ProjectID:     ov.ProjectID,
		Costs:         ov.Costs,
		BillableValue: ov.BillableValue,
		Profit:        profit,
		MarginPercent: pct,
		Status:        ClassifyMargin(pct),
	}
}

// marginPercent guards the division: zero revenue reports 0% margin
// regardless of cost sign, never -Inf or NaN.
func marginPercent(profit, revenue float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return profit / revenue * 100
}

// laborFigures reduces completed time entries to internal labor cost, total
// billable value (billable entries at the biller's rate) and hours tracked.
// Running entries contribute nothing until stopped.
func laborFigures(entries []ledger.TimeEntry, profiles map[string]*ledger.Profile) (labor, billable, hours float64) {
	for _, e := range entries {
		if !e.Completed() {
			continue
		}
		h := e.Hours()
		rates := ledger.ResolveRates(profiles[e.ProfileID])
		labor += h * rates.Internal
		if e.Billable {
			billable += h * rates.Billable
		}
		hours += h
	}
	return labor, billable, hours
}

func sumCosts(costs []ledger.Cost) float64 {
	var total float64
	for _, c := range costs {
		total += c.Amount
	}
	return total
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
