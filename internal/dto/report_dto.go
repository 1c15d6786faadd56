package dto

type CreateReportRequest struct {
	Summary          string   `json:"summary"`
	HoursWorked      float64  `json:"hours_worked"`
	TasksCompleted   []string `json:"tasks_completed"`
	Challenges       string   `json:"challenges"`
	PlansForTomorrow string   `json:"plans_for_tomorrow"`
}
