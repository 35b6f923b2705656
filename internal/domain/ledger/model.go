package ledger

import "time"

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// EntryStatus is the review state of a time entry.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "draft"
	EntrySubmitted EntryStatus = "submitted"
	EntryApproved  EntryStatus = "approved"
	EntryRejected  EntryStatus = "rejected"
)

// DocumentStatus is the state of a financial document (invoice, quote).
type DocumentStatus string

const (
	DocumentDraft     DocumentStatus = "draft"
	DocumentSent      DocumentStatus = "sent"
	DocumentApproved  DocumentStatus = "approved"
	DocumentPaid      DocumentStatus = "paid"
	DocumentCancelled DocumentStatus = "cancelled"
)

// Role is a profile's role within the agency.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
	RoleFreelancer Role = "freelancer"
	RoleClient     Role = "client"
)

// Project is a client engagement owning tasks, costs, time and documents.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	BudgetTotal *float64      `json:"budget_total,omitempty"`
	Deadline    *time.Time    `json:"deadline,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Task is a unit of planned work within a project. AssigneeID and
// ServiceModuleID are optional links; EstimatedHours is nil when the task
// was never estimated.
type Task struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"project_id"`
	Title           string     `json:"title"`
	ServiceModuleID *string    `json:"service_module_id,omitempty"`
	AssigneeID      *string    `json:"assignee_id,omitempty"`
	EstimatedHours  *float64   `json:"estimated_hours,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
}

// Profile is a person. Rate and capacity fields are nullable in the store;
// ResolveRates and WeeklyHours supply the defaults.
type Profile struct {
	ID                  string   `json:"id"`
	FullName            string   `json:"full_name"`
	Role                Role     `json:"role"`
	WeeklyHours         *float64 `json:"weekly_hours,omitempty"`
	BillableHourlyRate  *float64 `json:"billable_hourly_rate,omitempty"`
	InternalCostPerHour *float64 `json:"internal_cost_per_hour,omitempty"`
}

// TimeEntry is a logged (or still running) block of work. EndTime and
// DurationMinutes are nil while the entry is running. ServiceModuleID is
// resolved from the entry's task by the repository.
type TimeEntry struct {
	ID              string      `json:"id"`
	ProjectID       string      `json:"project_id"`
	TaskID          string      `json:"task_id"`
	ProfileID       string      `json:"profile_id"`
	ServiceModuleID *string     `json:"service_module_id,omitempty"`
	StartTime       time.Time   `json:"start_time"`
	EndTime         *time.Time  `json:"end_time,omitempty"`
	DurationMinutes *float64    `json:"duration_minutes,omitempty"`
	Billable        bool        `json:"billable"`
	Status          EntryStatus `json:"status"`
}

// Completed reports whether the entry has been stopped and carries a
// resolved duration. Running entries contribute nothing to aggregates.
func (e TimeEntry) Completed() bool {
	return e.EndTime != nil && e.DurationMinutes != nil
}

// Hours returns the entry's duration in hours, 0 while running.
func (e TimeEntry) Hours() float64 {
	if e.DurationMinutes == nil {
		return 0
	}
	return *e.DurationMinutes / 60
}

// Cost is a direct project expense.
type Cost struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ServiceModule is a billable category of work ("SEO", "Design").
type ServiceModule struct {
	ID       string `json:"id"`
	Name     string `json:"service_module"`
	Category string `json:"category,omitempty"`
	IsActive bool   `json:"is_active"`
}

// FinancialDocument is an invoice or quote owning line items.
type FinancialDocument struct {
	ID        string         `json:"id"`
	ProjectID string         `json:"project_id"`
	Status    DocumentStatus `json:"status"`
}

// FinancialItem is a line on a financial document.
type FinancialItem struct {
	ID              string  `json:"id"`
	DocumentID      string  `json:"document_id"`
	ServiceModuleID *string `json:"service_module_id,omitempty"`
	TotalPrice      float64 `json:"total_price"`
}

// RevenueItem is the flat projection of a financial item joined to its
// document: the only revenue shape the calculators consume.
type RevenueItem struct {
	ID              string         `json:"id"`
	DocumentID      string         `json:"document_id"`
	ProjectID       string         `json:"project_id"`
	ServiceModuleID *string        `json:"service_module_id,omitempty"`
	TotalPrice      float64        `json:"total_price"`
	Status          DocumentStatus `json:"status"`
}

// ProjectMember is a staffing assignment.
type ProjectMember struct {
	ProjectID string `json:"project_id"`
	ProfileID string `json:"profile_id"`
	Role      string `json:"role,omitempty"`
}
