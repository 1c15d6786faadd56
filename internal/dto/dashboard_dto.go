package dto

// DashboardResponse is computed from rows the caller's scope already covers;
// it issues no queries beyond what the entity panels fetch.
type DashboardResponse struct {
	Company        *CompanyStats    `json:"company,omitempty"`
	RoleCounts     map[string]int64 `json:"role_counts,omitempty"`
	TaskStatus     map[string]int64 `json:"task_status"`
	ReportedToday  bool             `json:"reported_today"`
	UnreadMessages int64            `json:"unread_messages"`
}

type CompanyStats struct {
	Branches         int64   `json:"branches"`
	BranchesLimit    int     `json:"branches_limit"`
	BranchesUsedPct  float64 `json:"branches_used_pct"`
	Employees        int64   `json:"employees"`
	EmployeesLimit   int     `json:"employees_limit"`
	EmployeesUsedPct float64 `json:"employees_used_pct"`
}
