package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/models"
	"github.com/stafflink-app/stafflink-backend/internal/realtime"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

var (
	ErrReportExists          = errors.New("a report for today has already been submitted")
	ErrReportSummaryRequired = errors.New("report summary is required")
	ErrInvalidDateRange      = errors.New("invalid date range")
)

type ReportService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewReportService(db *gorm.DB, hub *realtime.Hub) *ReportService {
	return &ReportService{db: db, hub: hub}
}

func (s *ReportService) List(identity *tenant.Identity) ([]models.DailyReport, error) {
	var reports []models.DailyReport
	err := s.db.Scopes(tenant.ReportsFor(identity)).Order("date DESC").Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// Create submits today's report. One report per user per day: a second
// submission for the same day is rejected, not merely discouraged.
func (s *ReportService) Create(identity *tenant.Identity, req *dto.CreateReportRequest) (*models.DailyReport, error) {
	if strings.TrimSpace(req.Summary) == "" {
		return nil, ErrReportSummaryRequired
	}
	if identity.CompanyID == nil {
		return nil, ErrCompanyNotFound
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var existing models.DailyReport
	err := s.db.Where("user_id = ? AND date >= ? AND date < ?",
		identity.UserID, dayStart, dayStart.AddDate(0, 0, 1)).First(&existing).Error
	if err == nil {
		return nil, ErrReportExists
	}

	var tasksJSON datatypes.JSON
	if len(req.TasksCompleted) > 0 {
		b, err := json.Marshal(req.TasksCompleted)
		if err != nil {
			return nil, err
		}
		tasksJSON = datatypes.JSON(b)
	}

	report := models.DailyReport{
		ID:               uuid.New(),
		UserID:           identity.UserID,
		CompanyID:        *identity.CompanyID,
		BranchID:         identity.BranchID,
		Date:             dayStart,
		Summary:          strings.TrimSpace(req.Summary),
		HoursWorked:      req.HoursWorked,
		TasksCompleted:   tasksJSON,
		Challenges:       req.Challenges,
		PlansForTomorrow: req.PlansForTomorrow,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}

	companyID := report.CompanyID
	s.hub.Publish(realtime.Event{
		Table:      realtime.TableReports,
		Action:     realtime.ActionInsert,
		RowID:      report.ID,
		CompanyID:  &companyID,
		BranchID:   report.BranchID,
		ActorID:    identity.UserID,
		Recipients: []uuid.UUID{identity.UserID},
	})
	return &report, nil
}

// ReportedToday reports whether the caller already has a report for today.
// The client disables the submit action off this flag.
func (s *ReportService) ReportedToday(identity *tenant.Identity) (bool, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var count int64
	err := s.db.Model(&models.DailyReport{}).
		Where("user_id = ? AND date >= ? AND date < ?",
			identity.UserID, dayStart, dayStart.AddDate(0, 0, 1)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// TeamReports returns the scoped reports within a named date range
// (day, week or month), optionally filtered to a single team member.
func (s *ReportService) TeamReports(identity *tenant.Identity, dateRange string, memberID *uuid.UUID) ([]models.DailyReport, error) {
	now := time.Now().UTC()
	var since time.Time
	switch dateRange {
	case "day":
		since = now.AddDate(0, 0, -1)
	case "week", "":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, -1, 0)
	default:
		return nil, ErrInvalidDateRange
	}

	query := s.db.Scopes(tenant.ReportsFor(identity)).
		Where("date >= ? AND date <= ?", since, now)
	if memberID != nil {
		query = query.Where("user_id = ?", *memberID)
	}

	var reports []models.DailyReport
	if err := query.Order("date DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
