package tenant

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.UserRole{}, &models.Task{}, &models.Message{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedTask(t *testing.T, db *gorm.DB, companyID uuid.UUID, branchID, assignedTo *uuid.UUID) *models.Task {
	t.Helper()
	task := models.Task{
		ID:         uuid.New(),
		CompanyID:  companyID,
		BranchID:   branchID,
		Title:      "task",
		Status:     models.TaskStatusPending,
		Priority:   models.TaskPriorityMedium,
		AssignedTo: assignedTo,
		AssignedBy: uuid.New(),
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return &task
}

func countTasks(t *testing.T, db *gorm.DB, scope func(*gorm.DB) *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Task{}).Scopes(scope).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestTasksForAdminSeesWholeCompany(t *testing.T) {
	db := setupTestDB(t)
	companyA := uuid.New()
	companyB := uuid.New()
	branch := uuid.New()

	seedTask(t, db, companyA, &branch, nil)
	seedTask(t, db, companyA, nil, nil)
	seedTask(t, db, companyB, nil, nil)

	admin := &Identity{UserID: uuid.New(), Role: models.RoleCompanyAdmin, CompanyID: &companyA}
	if got := countTasks(t, db, TasksFor(admin)); got != 2 {
		t.Fatalf("expected 2 company tasks, got %d", got)
	}
}

func TestTasksForManagerSeesBranchOnly(t *testing.T) {
	db := setupTestDB(t)
	company := uuid.New()
	hq := uuid.New()
	other := uuid.New()

	seedTask(t, db, company, &hq, nil)
	seedTask(t, db, company, &other, nil)

	manager := &Identity{UserID: uuid.New(), Role: models.RoleManager, CompanyID: &company, BranchID: &hq}
	if got := countTasks(t, db, TasksFor(manager)); got != 1 {
		t.Fatalf("expected 1 branch task, got %d", got)
	}
}

func TestTasksForEmployeeSeesOwnAssignments(t *testing.T) {
	db := setupTestDB(t)
	company := uuid.New()
	branch := uuid.New()
	me := uuid.New()
	someoneElse := uuid.New()

	seedTask(t, db, company, &branch, &me)
	seedTask(t, db, company, &branch, &someoneElse)
	seedTask(t, db, company, &branch, nil)

	employee := &Identity{UserID: me, Role: models.RoleEmployee, CompanyID: &company, BranchID: &branch}
	if got := countTasks(t, db, TasksFor(employee)); got != 1 {
		t.Fatalf("expected 1 own task, got %d", got)
	}
}

func TestScopesMatchNothingWhenIDMissing(t *testing.T) {
	db := setupTestDB(t)
	company := uuid.New()
	branch := uuid.New()
	seedTask(t, db, company, &branch, nil)

	// Admin without a company id, manager without a branch id.
	admin := &Identity{UserID: uuid.New(), Role: models.RoleAdmin}
	if got := countTasks(t, db, TasksFor(admin)); got != 0 {
		t.Fatalf("expected 0 tasks for scopeless admin, got %d", got)
	}
	manager := &Identity{UserID: uuid.New(), Role: models.RoleManager, CompanyID: &company}
	if got := countTasks(t, db, TasksFor(manager)); got != 0 {
		t.Fatalf("expected 0 tasks for branchless manager, got %d", got)
	}
}

func TestThreadMatchesBothDirections(t *testing.T) {
	db := setupTestDB(t)
	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	msgs := []models.Message{
		{ID: uuid.New(), SenderID: alice, RecipientID: bob, Content: "a to b"},
		{ID: uuid.New(), SenderID: bob, RecipientID: alice, Content: "b to a"},
		{ID: uuid.New(), SenderID: alice, RecipientID: carol, Content: "a to c"},
	}
	for i := range msgs {
		if err := db.Create(&msgs[i]).Error; err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	var count int64
	if err := db.Model(&models.Message{}).Scopes(Thread(alice, bob)).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 thread messages, got %d", count)
	}
}

func TestResolveWithAndWithoutAssignment(t *testing.T) {
	db := setupTestDB(t)
	company := uuid.New()
	branch := uuid.New()
	userID := uuid.New()

	assignment := models.UserRole{
		ID:        uuid.New(),
		UserID:    userID,
		Role:      models.RoleManager,
		CompanyID: &company,
		BranchID:  &branch,
	}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("seed role: %v", err)
	}

	identity := Resolve(db, userID, "m@example.com")
	if identity.Role != models.RoleManager {
		t.Fatalf("expected manager role, got %q", identity.Role)
	}
	if identity.CompanyID == nil || *identity.CompanyID != company {
		t.Fatalf("expected company id resolved")
	}
	if !identity.IsManager() || identity.IsAdmin() {
		t.Fatalf("unexpected capabilities for manager")
	}

	// Unassigned users stay authenticated but unprivileged.
	bare := Resolve(db, uuid.New(), "nobody@example.com")
	if bare.Role != "" || bare.IsAdmin() || bare.IsManager() {
		t.Fatalf("expected empty role for unassigned user")
	}
	if bare.CompanyID != nil || bare.BranchID != nil {
		t.Fatalf("expected nil scope ids for unassigned user")
	}
}
