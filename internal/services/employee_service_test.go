package services

import (
	"errors"
	"testing"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/models"
)

func TestEmployeeCreateEnforcesLimit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(db)
	company := seedCompany(t, db, 3, 2)
	branch := seedBranch(t, db, company.ID, "HQ", true)
	admin := seedMember(t, db, models.RoleCompanyAdmin, &company.ID, &branch.ID)
	seedMember(t, db, models.RoleEmployee, &company.ID, &branch.ID)

	// Two assignments exist (admin + employee); the limit is 2.
	_, err := svc.Create(admin, &dto.CreateEmployeeRequest{
		Email:     "newhire@example.com",
		Password:  "supersecret",
		FirstName: "New",
		LastName:  "Hire",
		Role:      models.RoleEmployee,
	})
	if !errors.Is(err, ErrEmployeeLimitReached) {
		t.Fatalf("expected ErrEmployeeLimitReached, got %v", err)
	}
}

func TestEmployeeCreateRejectedForEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(db)
	company := seedCompany(t, db, 3, 10)
	branch := seedBranch(t, db, company.ID, "HQ", true)
	employee := seedMember(t, db, models.RoleEmployee, &company.ID, &branch.ID)

	_, err := svc.Create(employee, &dto.CreateEmployeeRequest{
		Email: "x@example.com", Password: "supersecret", Role: models.RoleEmployee,
	})
	if !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed, got %v", err)
	}
}

func TestEmployeeCreateValidatesRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(db)
	company := seedCompany(t, db, 3, 10)
	branch := seedBranch(t, db, company.ID, "HQ", true)
	admin := seedMember(t, db, models.RoleCompanyAdmin, &company.ID, &branch.ID)

	_, err := svc.Create(admin, &dto.CreateEmployeeRequest{
		Email: "x@example.com", Password: "supersecret", Role: "overlord",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestEmployeeCreateBoundsAssignableRoles(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(db)
	company := seedCompany(t, db, 3, 10)
	branch := seedBranch(t, db, company.ID, "HQ", true)
	manager := seedMember(t, db, models.RoleManager, &company.ID, &branch.ID)
	admin := seedMember(t, db, models.RoleCompanyAdmin, &company.ID, &branch.ID)

	// Managers provision rank-and-file roles, never admins or their peers.
	for _, role := range []string{models.RoleCompanyAdmin, models.RoleAdmin, models.RoleManager} {
		_, err := svc.Create(manager, &dto.CreateEmployeeRequest{
			Email: role + "@example.com", Password: "supersecret", Role: role,
		})
		if !errors.Is(err, ErrRoleNotAssignable) {
			t.Fatalf("expected ErrRoleNotAssignable for manager assigning %q, got %v", role, err)
		}
	}

	if _, err := svc.Create(manager, &dto.CreateEmployeeRequest{
		Email: "hire@example.com", Password: "supersecret", Role: models.RoleEmployee,
	}); err != nil {
		t.Fatalf("manager creating employee: %v", err)
	}

	// Company admins mint anything below the platform admin role.
	if _, err := svc.Create(admin, &dto.CreateEmployeeRequest{
		Email: "operator@example.com", Password: "supersecret", Role: models.RoleAdmin,
	}); !errors.Is(err, ErrRoleNotAssignable) {
		t.Fatalf("expected ErrRoleNotAssignable for company admin assigning admin, got %v", err)
	}
	if _, err := svc.Create(admin, &dto.CreateEmployeeRequest{
		Email: "colleague@example.com", Password: "supersecret", Role: models.RoleCompanyAdmin,
	}); err != nil {
		t.Fatalf("company admin creating company admin: %v", err)
	}
}

func TestEmployeeRoleUpdateBoundsAssignableRoles(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(db)
	company := seedCompany(t, db, 3, 10)
	branch := seedBranch(t, db, company.ID, "HQ", true)
	admin := seedMember(t, db, models.RoleCompanyAdmin, &company.ID, &branch.ID)
	employee := seedMember(t, db, models.RoleEmployee, &company.ID, &branch.ID)

	_, err := svc.UpdateRole(admin, employee.UserID, &dto.UpdateRoleRequest{Role: models.RoleAdmin})
	if !errors.Is(err, ErrRoleNotAssignable) {
		t.Fatalf("expected ErrRoleNotAssignable, got %v", err)
	}

	updated, err := svc.UpdateRole(admin, employee.UserID, &dto.UpdateRoleRequest{Role: models.RoleManager})
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != models.RoleManager {
		t.Fatalf("expected manager role, got %q", updated.Role)
	}
}

func TestEmployeeCreateProvisionsUserProfileAndRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(db)
	company := seedCompany(t, db, 3, 10)
	branch := seedBranch(t, db, company.ID, "HQ", true)
	admin := seedMember(t, db, models.RoleCompanyAdmin, &company.ID, &branch.ID)

	created, err := svc.Create(admin, &dto.CreateEmployeeRequest{
		Email:     "hire@example.com",
		Password:  "supersecret",
		FirstName: "Jamie",
		LastName:  "Doe",
		Role:      models.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != models.RoleEmployee {
		t.Fatalf("expected employee role, got %q", created.Role)
	}
	if created.BranchID == nil || *created.BranchID != branch.ID {
		t.Fatalf("expected branch to default to the creator's branch")
	}

	var user models.User
	if err := db.First(&user, "email = ?", "hire@example.com").Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Password == "supersecret" {
		t.Fatalf("expected password to be hashed")
	}
	var profile models.Profile
	if err := db.First(&profile, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
}

func TestEmployeeListScopedToManagerBranch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(db)
	company := seedCompany(t, db, 3, 10)
	hq := seedBranch(t, db, company.ID, "HQ", true)
	other := seedBranch(t, db, company.ID, "Other", false)

	admin := seedMember(t, db, models.RoleCompanyAdmin, &company.ID, &hq.ID)
	manager := seedMember(t, db, models.RoleManager, &company.ID, &hq.ID)
	seedMember(t, db, models.RoleEmployee, &company.ID, &hq.ID)
	seedMember(t, db, models.RoleEmployee, &company.ID, &other.ID)

	all, err := svc.List(admin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 employees for admin, got %d", len(all))
	}

	branchOnly, err := svc.List(manager)
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if len(branchOnly) != 3 {
		t.Fatalf("expected 3 employees for manager, got %d", len(branchOnly))
	}
	for _, e := range branchOnly {
		if e.BranchID == nil || *e.BranchID != hq.ID {
			t.Fatalf("expected only HQ employees in manager list")
		}
	}
}

func TestProfileUpdateScopedToAdminCompany(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(db)

	companyA := seedCompany(t, db, 3, 10)
	branchA := seedBranch(t, db, companyA.ID, "A HQ", true)
	adminA := seedMember(t, db, models.RoleCompanyAdmin, &companyA.ID, &branchA.ID)

	companyB := seedCompany(t, db, 3, 10)
	branchB := seedBranch(t, db, companyB.ID, "B HQ", true)
	outsider := seedMember(t, db, models.RoleEmployee, &companyB.ID, &branchB.ID)
	insider := seedMember(t, db, models.RoleEmployee, &companyA.ID, &branchA.ID)

	name := "Renamed"
	if _, err := svc.UpdateProfile(adminA, outsider.UserID, &dto.UpdateProfileRequest{FirstName: &name}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound for foreign profile, got %v", err)
	}

	var untouched models.Profile
	if err := db.First(&untouched, "id = ?", outsider.UserID).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if untouched.FirstName == name {
		t.Fatalf("expected foreign profile to be untouched")
	}

	updated, err := svc.UpdateProfile(adminA, insider.UserID, &dto.UpdateProfileRequest{FirstName: &name})
	if err != nil {
		t.Fatalf("update own-company profile: %v", err)
	}
	if updated.FirstName != name {
		t.Fatalf("expected first name updated, got %q", updated.FirstName)
	}
}

func TestEmployeeRemoveKeepsProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(db)
	company := seedCompany(t, db, 3, 10)
	branch := seedBranch(t, db, company.ID, "HQ", true)
	admin := seedMember(t, db, models.RoleCompanyAdmin, &company.ID, &branch.ID)
	employee := seedMember(t, db, models.RoleEmployee, &company.ID, &branch.ID)

	if err := svc.Remove(admin, employee.UserID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	var roleCount int64
	if err := db.Model(&models.UserRole{}).Where("user_id = ?", employee.UserID).Count(&roleCount).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if roleCount != 0 {
		t.Fatalf("expected role assignment gone, got %d", roleCount)
	}

	var profile models.Profile
	if err := db.First(&profile, "id = ?", employee.UserID).Error; err != nil {
		t.Fatalf("expected profile to survive removal: %v", err)
	}

	if err := svc.Remove(admin, employee.UserID); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound on second removal, got %v", err)
	}
}
