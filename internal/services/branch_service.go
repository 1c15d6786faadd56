package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/models"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

var (
	ErrBranchNotFound       = errors.New("branch not found")
	ErrBranchFieldsRequired = errors.New("branch name and city are required")
	ErrBranchLimitReached   = errors.New("branch limit reached for this company")
	ErrLastBranch           = errors.New("a company must retain at least one branch")
	ErrHeadquartersBranch   = errors.New("the headquarters branch cannot be deleted")
	ErrHeadquartersDemotion = errors.New("promote another branch to move the headquarters")
	ErrBranchConflict       = errors.New("branch has associated employees or tasks")
)

type BranchService struct {
	db *gorm.DB
}

func NewBranchService(db *gorm.DB) *BranchService {
	return &BranchService{db: db}
}

func (s *BranchService) ListByCompany(companyID uuid.UUID) ([]models.Branch, error) {
	var branches []models.Branch
	err := s.db.Scopes(tenant.ForCompany(companyID)).Order("name").Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}

// load fetches a branch for a write operation. A branch outside the caller's
// company surfaces as not-found rather than confirming its existence; only
// the platform admin role reaches across companies.
func (s *BranchService) load(identity *tenant.Identity, id uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	if err := s.db.First(&branch, "id = ?", id).Error; err != nil {
		return nil, ErrBranchNotFound
	}
	if !identity.IsPlatformAdmin() {
		if identity.CompanyID == nil || *identity.CompanyID != branch.CompanyID {
			return nil, ErrBranchNotFound
		}
	}
	return &branch, nil
}

// Create adds a branch, enforcing the company's branches_limit. Company
// admins always create in their own company; the body's company_id is only
// honored for platform admins. When the new branch is flagged as
// headquarters, any current headquarters is demoted in the same transaction.
func (s *BranchService) Create(identity *tenant.Identity, req *dto.CreateBranchRequest) (*models.Branch, error) {
	if !identity.IsPlatformAdmin() {
		if identity.CompanyID == nil {
			return nil, ErrCompanyNotFound
		}
		req.CompanyID = *identity.CompanyID
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.City) == "" {
		return nil, ErrBranchFieldsRequired
	}

	var company models.Company
	if err := s.db.First(&company, "id = ?", req.CompanyID).Error; err != nil {
		return nil, ErrCompanyNotFound
	}

	branch := models.Branch{
		ID:             uuid.New(),
		CompanyID:      req.CompanyID,
		Name:           strings.TrimSpace(req.Name),
		Address:        req.Address,
		City:           strings.TrimSpace(req.City),
		State:          req.State,
		Country:        req.Country,
		ZipCode:        req.ZipCode,
		Phone:          req.Phone,
		Email:          req.Email,
		IsHeadquarters: req.IsHeadquarters,
		Active:         true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Branch{}).Scopes(tenant.ForCompany(req.CompanyID)).Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(company.BranchesLimit) {
			return ErrBranchLimitReached
		}

		if req.IsHeadquarters {
			if err := tx.Model(&models.Branch{}).
				Where("company_id = ?", req.CompanyID).
				Update("is_headquarters", false).Error; err != nil {
				return err
			}
		}

		return tx.Create(&branch).Error
	})
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (s *BranchService) Update(identity *tenant.Identity, id uuid.UUID, req *dto.UpdateBranchRequest) (*models.Branch, error) {
	branch, err := s.load(identity, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrBranchFieldsRequired
		}
		branch.Name = strings.TrimSpace(*req.Name)
	}
	if req.City != nil {
		if strings.TrimSpace(*req.City) == "" {
			return nil, ErrBranchFieldsRequired
		}
		branch.City = strings.TrimSpace(*req.City)
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.State != nil {
		branch.State = *req.State
	}
	if req.Country != nil {
		branch.Country = *req.Country
	}
	if req.ZipCode != nil {
		branch.ZipCode = *req.ZipCode
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Email != nil {
		branch.Email = *req.Email
	}
	if req.Active != nil {
		branch.Active = *req.Active
	}

	// A bare demote would leave the company without a headquarters; the
	// headquarters moves by promoting its successor.
	if req.IsHeadquarters != nil && !*req.IsHeadquarters && branch.IsHeadquarters {
		return nil, ErrHeadquartersDemotion
	}

	promote := req.IsHeadquarters != nil && *req.IsHeadquarters && !branch.IsHeadquarters
	if req.IsHeadquarters != nil {
		branch.IsHeadquarters = *req.IsHeadquarters
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if promote {
			if err := tx.Model(&models.Branch{}).
				Where("company_id = ? AND id <> ?", branch.CompanyID, branch.ID).
				Update("is_headquarters", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(branch).Error
	})
	if err != nil {
		return nil, err
	}
	return branch, nil
}

// SetHeadquarters promotes the branch and demotes every sibling inside one
// transaction, so concurrent swaps cannot leave zero or two headquarters.
func (s *BranchService) SetHeadquarters(identity *tenant.Identity, id uuid.UUID) (*models.Branch, error) {
	branch, err := s.load(identity, id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Branch{}).
			Where("company_id = ? AND id <> ?", branch.CompanyID, branch.ID).
			Update("is_headquarters", false).Error; err != nil {
			return err
		}
		return tx.Model(branch).Update("is_headquarters", true).Error
	})
	if err != nil {
		return nil, err
	}

	branch.IsHeadquarters = true
	return branch, nil
}

// Delete refuses to remove the last branch of a company or its headquarters.
func (s *BranchService) Delete(identity *tenant.Identity, id uuid.UUID) error {
	branch, err := s.load(identity, id)
	if err != nil {
		return err
	}

	if branch.IsHeadquarters {
		return ErrHeadquartersBranch
	}

	var count int64
	if err := s.db.Model(&models.Branch{}).Scopes(tenant.ForCompany(branch.CompanyID)).Count(&count).Error; err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastBranch
	}

	if err := s.db.Delete(branch).Error; err != nil {
		return ErrBranchConflict
	}
	return nil
}
