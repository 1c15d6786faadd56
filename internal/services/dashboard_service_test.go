package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/models"
	"github.com/stafflink-app/stafflink-backend/internal/realtime"
)

func newDashboard(db *gorm.DB, hub *realtime.Hub) *DashboardService {
	reports := NewReportService(db, hub)
	messages := NewMessageService(db, hub)
	return NewDashboardService(db, reports, messages)
}

func TestDashboardEmployeeOverview(t *testing.T) {
	db := setupTestDB(t)
	hub := realtime.NewHub()
	taskSvc := NewTaskService(db, hub)
	reportSvc := NewReportService(db, hub)
	dashboard := newDashboard(db, hub)

	company := seedCompany(t, db, 3, 10)
	branch := seedBranch(t, db, company.ID, "HQ", true)
	manager := seedMember(t, db, models.RoleManager, &company.ID, &branch.ID)
	employee := seedMember(t, db, models.RoleEmployee, &company.ID, &branch.ID)

	task, err := taskSvc.Create(manager, &dto.CreateTaskRequest{Title: "Open up", AssignedTo: &employee.UserID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := taskSvc.UpdateStatus(employee, task.ID, models.TaskStatusCompleted); err != nil {
		t.Fatalf("complete task: %v", err)
	}
	if _, err := reportSvc.Create(employee, &dto.CreateReportRequest{Summary: "Done"}); err != nil {
		t.Fatalf("create report: %v", err)
	}

	overview, err := dashboard.Overview(employee)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if overview.Company != nil {
		t.Fatalf("expected no company stats for employee")
	}
	if !overview.ReportedToday {
		t.Fatalf("expected reported_today true")
	}
	if overview.TaskStatus[models.TaskStatusCompleted] != 1 {
		t.Fatalf("expected 1 completed task, got %d", overview.TaskStatus[models.TaskStatusCompleted])
	}
	// Histogram is zero-filled so clients can chart all statuses.
	for _, status := range models.TaskStatuses {
		if _, ok := overview.TaskStatus[status]; !ok {
			t.Fatalf("expected status %q in histogram", status)
		}
	}
}

func TestDashboardAdminCompanyStats(t *testing.T) {
	db := setupTestDB(t)
	hub := realtime.NewHub()
	dashboard := newDashboard(db, hub)

	company := seedCompany(t, db, 4, 10)
	hq := seedBranch(t, db, company.ID, "HQ", true)
	seedBranch(t, db, company.ID, "Second", false)
	admin := seedMember(t, db, models.RoleCompanyAdmin, &company.ID, &hq.ID)
	seedMember(t, db, models.RoleEmployee, &company.ID, &hq.ID)

	overview, err := dashboard.Overview(admin)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if overview.Company == nil {
		t.Fatalf("expected company stats for admin")
	}
	if overview.Company.Branches != 2 {
		t.Fatalf("expected 2 branches, got %d", overview.Company.Branches)
	}
	if overview.Company.BranchesUsedPct != 50 {
		t.Fatalf("expected 50%% branch usage, got %v", overview.Company.BranchesUsedPct)
	}
	if overview.Company.Employees != 2 {
		t.Fatalf("expected 2 role assignments, got %d", overview.Company.Employees)
	}
	if overview.RoleCounts[models.RoleEmployee] != 1 || overview.RoleCounts[models.RoleCompanyAdmin] != 1 {
		t.Fatalf("unexpected role counts: %v", overview.RoleCounts)
	}
}
