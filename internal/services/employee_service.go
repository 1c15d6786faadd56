package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/models"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

var (
	ErrEmployeeLimitReached = errors.New("employee limit reached for this company")
	ErrInvalidRole          = errors.New("invalid role")
	ErrRoleNotAssignable    = errors.New("role exceeds the caller's authority")
	ErrRoleNotFound         = errors.New("role assignment not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrNotAllowed           = errors.New("operation not permitted for this role")
)

type EmployeeService struct {
	db *gorm.DB
}

func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{db: db}
}

// canAssign bounds the roles a caller may hand out. Only the platform admin
// mints other admins; company admins mint anything below admin; managers
// provision rank-and-file roles only.
func canAssign(identity *tenant.Identity, role string) bool {
	switch {
	case identity.IsPlatformAdmin():
		return true
	case identity.IsAdmin():
		return role != models.RoleAdmin
	case identity.IsManager():
		return role == models.RoleEmployee ||
			role == models.RoleAssistantManager ||
			role == models.RoleJobSeeker
	}
	return false
}

// List returns the employees of the caller's company joined with their
// profiles. Managers see only their branch.
func (s *EmployeeService) List(identity *tenant.Identity) ([]dto.EmployeeResponse, error) {
	if identity.CompanyID == nil {
		return []dto.EmployeeResponse{}, nil
	}

	query := s.db.Model(&models.UserRole{}).Scopes(tenant.ForCompany(*identity.CompanyID))
	if identity.IsManager() {
		if identity.BranchID == nil {
			return []dto.EmployeeResponse{}, nil
		}
		query = query.Scopes(tenant.ForBranch(*identity.BranchID))
	}

	var assignments []models.UserRole
	if err := query.Order("created_at").Find(&assignments).Error; err != nil {
		return nil, err
	}

	employees := make([]dto.EmployeeResponse, 0, len(assignments))
	for _, assignment := range assignments {
		var profile models.Profile
		if err := s.db.First(&profile, "id = ?", assignment.UserID).Error; err != nil {
			continue
		}
		employees = append(employees, dto.EmployeeResponse{
			ID:        profile.ID,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Email:     profile.Email,
			Phone:     profile.Phone,
			AvatarURL: profile.AvatarURL,
			Role:      assignment.Role,
			CompanyID: assignment.CompanyID,
			BranchID:  assignment.BranchID,
		})
	}
	return employees, nil
}

// Create provisions an auth user, profile and role assignment for a new
// employee, enforcing the company's employees_limit.
func (s *EmployeeService) Create(identity *tenant.Identity, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if !identity.IsAdmin() && !identity.IsManager() {
		return nil, ErrNotAllowed
	}
	if identity.CompanyID == nil {
		return nil, ErrCompanyNotFound
	}
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}
	if !models.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}
	if !canAssign(identity, req.Role) {
		return nil, ErrRoleNotAssignable
	}

	var company models.Company
	if err := s.db.First(&company, "id = ?", *identity.CompanyID).Error; err != nil {
		return nil, ErrCompanyNotFound
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	branchID := req.BranchID
	if branchID == nil {
		branchID = identity.BranchID
	}

	user := models.User{ID: uuid.New(), Email: req.Email, Password: string(hash)}
	profile := models.Profile{
		ID:        user.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	assignment := models.UserRole{
		ID:        uuid.New(),
		UserID:    user.ID,
		Role:      req.Role,
		CompanyID: identity.CompanyID,
		BranchID:  branchID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserRole{}).Scopes(tenant.ForCompany(*identity.CompanyID)).Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(company.EmployeesLimit) {
			return ErrEmployeeLimitReached
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return tx.Create(&assignment).Error
	})
	if err != nil {
		return nil, err
	}

	return &dto.EmployeeResponse{
		ID:        profile.ID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Phone:     profile.Phone,
		Role:      assignment.Role,
		CompanyID: assignment.CompanyID,
		BranchID:  assignment.BranchID,
	}, nil
}

// UpdateProfile lets users edit their own profile and admins edit anyone
// in their company. An admin editing a profile outside their company gets a
// not-found answer, the same as for an id that does not exist.
func (s *EmployeeService) UpdateProfile(identity *tenant.Identity, targetID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	if targetID != identity.UserID {
		if !identity.IsAdmin() {
			return nil, ErrNotAllowed
		}
		if !identity.IsPlatformAdmin() {
			if identity.CompanyID == nil {
				return nil, ErrProfileNotFound
			}
			var membership models.UserRole
			err := s.db.Scopes(tenant.ForCompany(*identity.CompanyID)).
				Where("user_id = ?", targetID).First(&membership).Error
			if err != nil {
				return nil, ErrProfileNotFound
			}
		}
	}

	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", targetID).Error; err != nil {
		return nil, ErrProfileNotFound
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *EmployeeService) UpdateRole(identity *tenant.Identity, targetID uuid.UUID, req *dto.UpdateRoleRequest) (*models.UserRole, error) {
	if !identity.IsAdmin() {
		return nil, ErrNotAllowed
	}
	if !models.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}
	if !canAssign(identity, req.Role) {
		return nil, ErrRoleNotAssignable
	}
	if identity.CompanyID == nil {
		return nil, ErrRoleNotFound
	}

	var assignment models.UserRole
	err := s.db.Scopes(tenant.ForCompany(*identity.CompanyID)).
		Where("user_id = ?", targetID).First(&assignment).Error
	if err != nil {
		return nil, ErrRoleNotFound
	}

	assignment.Role = req.Role
	if req.BranchID != nil {
		assignment.BranchID = req.BranchID
	}

	if err := s.db.Save(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Remove deletes the role assignment only. The profile row persists so an
// ex-employee keeps their account and can be re-assigned later.
func (s *EmployeeService) Remove(identity *tenant.Identity, targetID uuid.UUID) error {
	if !identity.IsAdmin() {
		return ErrNotAllowed
	}
	if identity.CompanyID == nil {
		return ErrRoleNotFound
	}

	result := s.db.Scopes(tenant.ForCompany(*identity.CompanyID)).
		Where("user_id = ?", targetID).Delete(&models.UserRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoleNotFound
	}
	return nil
}
