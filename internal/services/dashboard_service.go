package services

import (
	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/models"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

type DashboardService struct {
	db             *gorm.DB
	reportService  *ReportService
	messageService *MessageService
}

func NewDashboardService(db *gorm.DB, reports *ReportService, messages *MessageService) *DashboardService {
	return &DashboardService{db: db, reportService: reports, messageService: messages}
}

// Overview assembles the per-role dashboard aggregates: a task status
// histogram over the caller's scope, today's report flag and unread count
// for everyone, plus company stats and role counts for admins.
func (s *DashboardService) Overview(identity *tenant.Identity) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{
		TaskStatus: make(map[string]int64, len(models.TaskStatuses)),
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	err := s.db.Model(&models.Task{}).
		Scopes(tenant.TasksFor(identity)).
		Select("status, count(*) as count").
		Group("status").
		Find(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, status := range models.TaskStatuses {
		resp.TaskStatus[status] = 0
	}
	for _, c := range counts {
		resp.TaskStatus[c.Status] = c.Count
	}

	reported, err := s.reportService.ReportedToday(identity)
	if err != nil {
		return nil, err
	}
	resp.ReportedToday = reported

	unread, err := s.messageService.UnreadCount(identity)
	if err != nil {
		return nil, err
	}
	resp.UnreadMessages = unread

	if identity.IsAdmin() && identity.CompanyID != nil {
		stats, roleCounts, err := s.companyStats(identity)
		if err != nil {
			return nil, err
		}
		resp.Company = stats
		resp.RoleCounts = roleCounts
	}

	return resp, nil
}

func (s *DashboardService) companyStats(identity *tenant.Identity) (*dto.CompanyStats, map[string]int64, error) {
	var company models.Company
	if err := s.db.First(&company, "id = ?", *identity.CompanyID).Error; err != nil {
		return nil, nil, ErrCompanyNotFound
	}

	var branches int64
	if err := s.db.Model(&models.Branch{}).Scopes(tenant.ForCompany(company.ID)).Count(&branches).Error; err != nil {
		return nil, nil, err
	}

	var employees int64
	if err := s.db.Model(&models.UserRole{}).Scopes(tenant.ForCompany(company.ID)).Count(&employees).Error; err != nil {
		return nil, nil, err
	}

	type roleCount struct {
		Role  string
		Count int64
	}
	var rows []roleCount
	err := s.db.Model(&models.UserRole{}).
		Scopes(tenant.ForCompany(company.ID)).
		Select("role, count(*) as count").
		Group("role").
		Find(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	roleCounts := make(map[string]int64, len(rows))
	for _, r := range rows {
		roleCounts[r.Role] = r.Count
	}

	stats := &dto.CompanyStats{
		Branches:       branches,
		BranchesLimit:  company.BranchesLimit,
		Employees:      employees,
		EmployeesLimit: company.EmployeesLimit,
	}
	if company.BranchesLimit > 0 {
		stats.BranchesUsedPct = float64(branches) / float64(company.BranchesLimit) * 100
	}
	if company.EmployeesLimit > 0 {
		stats.EmployeesUsedPct = float64(employees) / float64(company.EmployeesLimit) * 100
	}
	return stats, roleCounts, nil
}
