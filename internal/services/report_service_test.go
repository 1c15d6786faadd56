package services

import (
	"errors"
	"testing"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/models"
	"github.com/stafflink-app/stafflink-backend/internal/realtime"
)

func TestReportCreateRequiresSummary(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, realtime.NewHub())
	company := seedCompany(t, db, 3, 10)
	branch := seedBranch(t, db, company.ID, "HQ", true)
	employee := seedMember(t, db, models.RoleEmployee, &company.ID, &branch.ID)

	_, err := svc.Create(employee, &dto.CreateReportRequest{Summary: "   "})
	if !errors.Is(err, ErrReportSummaryRequired) {
		t.Fatalf("expected ErrReportSummaryRequired, got %v", err)
	}
}

func TestReportCreateRejectsSecondSubmissionSameDay(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, realtime.NewHub())
	company := seedCompany(t, db, 3, 10)
	branch := seedBranch(t, db, company.ID, "HQ", true)
	employee := seedMember(t, db, models.RoleEmployee, &company.ID, &branch.ID)

	if _, err := svc.Create(employee, &dto.CreateReportRequest{Summary: "Did things", HoursWorked: 8}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(employee, &dto.CreateReportRequest{Summary: "Did more things"})
	if !errors.Is(err, ErrReportExists) {
		t.Fatalf("expected ErrReportExists, got %v", err)
	}

	reported, err := svc.ReportedToday(employee)
	if err != nil {
		t.Fatalf("reported today: %v", err)
	}
	if !reported {
		t.Fatalf("expected reported today to be true")
	}
}

func TestReportListScopedByRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, realtime.NewHub())
	company := seedCompany(t, db, 3, 10)
	hq := seedBranch(t, db, company.ID, "HQ", true)
	other := seedBranch(t, db, company.ID, "Other", false)

	admin := seedMember(t, db, models.RoleCompanyAdmin, &company.ID, &hq.ID)
	manager := seedMember(t, db, models.RoleManager, &company.ID, &hq.ID)
	hqEmployee := seedMember(t, db, models.RoleEmployee, &company.ID, &hq.ID)
	otherEmployee := seedMember(t, db, models.RoleEmployee, &company.ID, &other.ID)

	if _, err := svc.Create(hqEmployee, &dto.CreateReportRequest{Summary: "HQ day"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(otherEmployee, &dto.CreateReportRequest{Summary: "Other day"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	adminReports, err := svc.List(admin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(adminReports) != 2 {
		t.Fatalf("expected admin to see 2 reports, got %d", len(adminReports))
	}

	managerReports, err := svc.List(manager)
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if len(managerReports) != 1 {
		t.Fatalf("expected manager to see 1 report, got %d", len(managerReports))
	}

	ownReports, err := svc.List(hqEmployee)
	if err != nil {
		t.Fatalf("employee list: %v", err)
	}
	if len(ownReports) != 1 || ownReports[0].UserID != hqEmployee.UserID {
		t.Fatalf("expected employee to see only their own report")
	}
}

func TestTeamReportsValidatesRange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, realtime.NewHub())
	company := seedCompany(t, db, 3, 10)
	branch := seedBranch(t, db, company.ID, "HQ", true)
	manager := seedMember(t, db, models.RoleManager, &company.ID, &branch.ID)

	if _, err := svc.TeamReports(manager, "year", nil); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	// Empty range falls back to a week.
	if _, err := svc.TeamReports(manager, "", nil); err != nil {
		t.Fatalf("default range: %v", err)
	}
}

func TestTeamReportsFiltersByMember(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, realtime.NewHub())
	company := seedCompany(t, db, 3, 10)
	branch := seedBranch(t, db, company.ID, "HQ", true)
	manager := seedMember(t, db, models.RoleManager, &company.ID, &branch.ID)
	alice := seedMember(t, db, models.RoleEmployee, &company.ID, &branch.ID)
	bob := seedMember(t, db, models.RoleEmployee, &company.ID, &branch.ID)

	if _, err := svc.Create(alice, &dto.CreateReportRequest{Summary: "Alice day"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(bob, &dto.CreateReportRequest{Summary: "Bob day"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	reports, err := svc.TeamReports(manager, "week", &alice.UserID)
	if err != nil {
		t.Fatalf("team reports: %v", err)
	}
	if len(reports) != 1 || reports[0].UserID != alice.UserID {
		t.Fatalf("expected only alice's report")
	}
}
