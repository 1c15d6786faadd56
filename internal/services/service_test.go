package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/models"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.RefreshToken{},
		&models.UserRole{},
		&models.Company{},
		&models.Branch{},
		&models.Task{},
		&models.DailyReport{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCompany(t *testing.T, db *gorm.DB, branchesLimit, employeesLimit int) *models.Company {
	t.Helper()
	company := models.Company{
		ID:               uuid.New(),
		Name:             "Acme",
		SubscriptionType: models.SubscriptionDemo,
		BranchesLimit:    branchesLimit,
		EmployeesLimit:   employeesLimit,
		Active:           true,
	}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return &company
}

func seedBranch(t *testing.T, db *gorm.DB, companyID uuid.UUID, name string, hq bool) *models.Branch {
	t.Helper()
	branch := models.Branch{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Name:           name,
		City:           "Springfield",
		IsHeadquarters: hq,
		Active:         true,
	}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}
	return &branch
}

func seedMember(t *testing.T, db *gorm.DB, role string, companyID, branchID *uuid.UUID) *tenant.Identity {
	t.Helper()
	userID := uuid.New()
	email := fmt.Sprintf("%s@example.com", userID.String()[:8])

	user := models.User{ID: userID, Email: email, Password: "hash"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	profile := models.Profile{ID: userID, FirstName: "Test", LastName: "User", Email: email}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	assignment := models.UserRole{
		ID:        uuid.New(),
		UserID:    userID,
		Role:      role,
		CompanyID: companyID,
		BranchID:  branchID,
	}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("seed role: %v", err)
	}

	return &tenant.Identity{
		UserID:    userID,
		Email:     email,
		Role:      role,
		CompanyID: companyID,
		BranchID:  branchID,
	}
}
