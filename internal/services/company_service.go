package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/models"
)

var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrCompanyNameRequired = errors.New("company name is required")
	ErrInvalidSubscription = errors.New("invalid subscription type")
)

type CompanyService struct {
	db *gorm.DB
}

func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{db: db}
}

func (s *CompanyService) List() ([]models.Company, error) {
	var companies []models.Company
	if err := s.db.Order("name").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (s *CompanyService) Get(id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := s.db.First(&company, "id = ?", id).Error; err != nil {
		return nil, ErrCompanyNotFound
	}
	return &company, nil
}

func (s *CompanyService) Create(req *dto.CreateCompanyRequest) (*models.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCompanyNameRequired
	}

	subscription := req.SubscriptionType
	if subscription == "" {
		subscription = models.SubscriptionDemo
	}
	if !models.IsValidSubscription(subscription) {
		return nil, ErrInvalidSubscription
	}

	branchesLimit := req.BranchesLimit
	if branchesLimit <= 0 {
		branchesLimit = 1
	}
	employeesLimit := req.EmployeesLimit
	if employeesLimit <= 0 {
		employeesLimit = 10
	}

	company := models.Company{
		ID:               uuid.New(),
		Name:             name,
		Description:      req.Description,
		SubscriptionType: subscription,
		BranchesLimit:    branchesLimit,
		EmployeesLimit:   employeesLimit,
		Active:           true,
	}

	if err := s.db.Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *CompanyService) Update(id uuid.UUID, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	var company models.Company
	if err := s.db.First(&company, "id = ?", id).Error; err != nil {
		return nil, ErrCompanyNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrCompanyNameRequired
		}
		company.Name = name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.SubscriptionType != nil {
		if !models.IsValidSubscription(*req.SubscriptionType) {
			return nil, ErrInvalidSubscription
		}
		company.SubscriptionType = *req.SubscriptionType
	}
	if req.BranchesLimit != nil && *req.BranchesLimit > 0 {
		company.BranchesLimit = *req.BranchesLimit
	}
	if req.EmployeesLimit != nil && *req.EmployeesLimit > 0 {
		company.EmployeesLimit = *req.EmployeesLimit
	}
	if req.Active != nil {
		company.Active = *req.Active
	}

	if err := s.db.Save(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *CompanyService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
