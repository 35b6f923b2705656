package finance

// ServiceProfitability is one row of the system-wide service report.
// EntryCount is the number of counted time-entry rows, an engagement proxy,
// not a distinct-task count.
type ServiceProfitability struct {
	ServiceModuleID string  `json:"service_module_id"`
	Name            string  `json:"service_module"`
	Category        string  `json:"category,omitempty"`
	Revenue         float64 `json:"revenue"`
	Cost            float64 `json:"cost"`
	Profit          float64 `json:"profit"`
	MarginPercent   float64 `json:"margin_percent"`
	HoursTracked    float64 `json:"hours_tracked"`
	EntryCount      int     `json:"entry_count"`
}

// ProjectOverview is the spend-vs-budget picture of a single project.
// ProgressPercent is clamped to 100; BudgetRatio is the raw total/budget
// ratio so callers can flag overrun beyond 100%.
type ProjectOverview struct {
	ProjectID       string  `json:"project_id"`
	DirectCosts     float64 `json:"direct_costs"`
	LaborCost       float64 `json:"labor_cost"`
	Costs           float64 `json:"costs"`
	BillableValue   float64 `json:"billable_value"`
	Total           float64 `json:"total"`
	BudgetTotal     float64 `json:"budget_total"`
	ProgressPercent float64 `json:"progress_percent"`
	BudgetRatio     float64 `json:"budget_ratio"`
}

// MarginStatus is the severity tier of a project margin.
type MarginStatus string

const (
	MarginExcellent  MarginStatus = "excellent"
	MarginGood       MarginStatus = "good"
	MarginAcceptable MarginStatus = "acceptable"
	MarginPoor       MarginStatus = "poor"
	MarginCritical   MarginStatus = "critical"
)

// ProjectMargin is a project's profit and margin tier for list-view badges.
type ProjectMargin struct {
	ProjectID     string       `json:"project_id"`
	Name          string       `json:"name"`
	Costs         float64      `json:"costs"`
	BillableValue float64      `json:"billable_value"`
	Profit        float64      `json:"profit"`
	MarginPercent float64      `json:"margin_percent"`
	Status        MarginStatus `json:"status"`
}

// ClassifyMargin maps a margin percentage to its severity tier. Lower
// bounds are inclusive. Every consumer maps through here; the thresholds
// are not re-derived anywhere else.
func ClassifyMargin(marginPercent float64) MarginStatus {
	switch {
	case marginPercent >= 30:
		return MarginExcellent
	case marginPercent >= 20:
		return MarginGood
	case marginPercent >= 10:
		return MarginAcceptable
	case marginPercent >= 0:
		return MarginPoor
	default:
		return MarginCritical
	}
}
