package workload

import "github.com/danhawke/crewledger/internal/domain/ledger"

// Summary is a profile's planned load against capacity over a window.
type Summary struct {
	ProfileID          string        `json:"profile_id"`
	Window             ledger.Window `json:"window"`
	AssignedProjects   int           `json:"assigned_projects"`
	AssignedTasks      int           `json:"assigned_tasks"`
	TotalPlannedHours  float64       `json:"total_planned_hours"`
	WeeklyHours        float64       `json:"weekly_hours"`
	CapacityHours      float64       `json:"capacity_hours"`
	UtilizationPercent float64       `json:"utilization_percent"`
}

// Advice is the feasibility verdict for a hypothetical assignment. It is
// advisory: callers may proceed against a false CanAssign.
type Advice struct {
	CanAssign            bool    `json:"can_assign"`
	Reason               string  `json:"reason,omitempty"`
	CurrentUtilization   float64 `json:"current_utilization"`
	ProjectedUtilization float64 `json:"projected_utilization"`
	ThresholdPercent     float64 `json:"threshold_percent"`
}
