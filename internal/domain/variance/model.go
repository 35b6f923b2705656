package variance

// BudgetStatus classifies a task's actual value against its planned value.
type BudgetStatus string

const (
	UnderBudget BudgetStatus = "under_budget"
	OnBudget    BudgetStatus = "on_budget"
	OverBudget  BudgetStatus = "over_budget"
)

// TaskVariance compares a task's estimate against its logged time and value.
// ActualRates are the distinct billable rates observed across the counted
// entries, in first-observed order, for "avg rate" style display.
type TaskVariance struct {
	TaskID               string       `json:"task_id"`
	EstimatedHours       float64      `json:"estimated_hours"`
	EstimatedRate        float64      `json:"estimated_rate"`
	PlannedValue         float64      `json:"planned_value"`
	ActualHours          float64      `json:"actual_hours"`
	ActualValue          float64      `json:"actual_value"`
	ActualRates          []float64    `json:"actual_rates"`
	HoursVariance        float64      `json:"hours_variance"`
	ValueVariance        float64      `json:"value_variance"`
	ValueVariancePercent float64      `json:"value_variance_percent"`
	Status               BudgetStatus `json:"status"`
}
