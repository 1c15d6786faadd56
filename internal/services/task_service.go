package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/models"
	"github.com/stafflink-app/stafflink-backend/internal/realtime"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskTitleRequired = errors.New("task title is required")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
)

type TaskService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewTaskService(db *gorm.DB, hub *realtime.Hub) *TaskService {
	return &TaskService{db: db, hub: hub}
}

// List returns the tasks the identity may see: own assignments for
// employees, the branch for managers, the company for admins.
func (s *TaskService) List(identity *tenant.Identity) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Scopes(tenant.TasksFor(identity)).Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) Create(identity *tenant.Identity, req *dto.CreateTaskRequest) (*models.Task, error) {
	if !identity.IsAdmin() && !identity.IsManager() {
		return nil, ErrNotAllowed
	}
	if identity.CompanyID == nil {
		return nil, ErrCompanyNotFound
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTaskTitleRequired
	}

	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !models.IsValidTaskPriority(priority) {
		return nil, ErrInvalidPriority
	}

	branchID := req.BranchID
	if branchID == nil {
		branchID = identity.BranchID
	}

	task := models.Task{
		ID:          uuid.New(),
		CompanyID:   *identity.CompanyID,
		BranchID:    branchID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      models.TaskStatusPending,
		Priority:    priority,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  identity.UserID,
		Recurring:   req.Recurring,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	s.publish(realtime.ActionInsert, &task, identity.UserID)
	return &task, nil
}

// UpdateStatus may be called by the assignee or by a privileged role in the
// task's scope.
func (s *TaskService) UpdateStatus(identity *tenant.Identity, id uuid.UUID, status string) (*models.Task, error) {
	if !models.IsValidTaskStatus(status) {
		return nil, ErrInvalidStatus
	}

	task, err := s.load(identity, id)
	if err != nil {
		return nil, err
	}

	isAssignee := task.AssignedTo != nil && *task.AssignedTo == identity.UserID
	if !isAssignee && !identity.IsAdmin() && !identity.IsManager() {
		return nil, ErrNotAllowed
	}

	if err := s.db.Model(task).Update("status", status).Error; err != nil {
		return nil, err
	}
	task.Status = status

	s.publish(realtime.ActionUpdate, task, identity.UserID)
	return task, nil
}

func (s *TaskService) Update(identity *tenant.Identity, id uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	if !identity.IsAdmin() && !identity.IsManager() {
		return nil, ErrNotAllowed
	}

	task, err := s.load(identity, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTaskTitleRequired
		}
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		if !models.IsValidTaskPriority(*req.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
	}
	if req.Recurring != nil {
		task.Recurring = *req.Recurring
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, err
	}

	s.publish(realtime.ActionUpdate, task, identity.UserID)
	return task, nil
}

// Delete is allowed for admins and managers within their scope, and for the
// task's creator even after reassignment moved the task out of their scope.
// A task outside both the scope and the creator exception reads as not-found.
func (s *TaskService) Delete(identity *tenant.Identity, id uuid.UUID) error {
	task, err := s.load(identity, id)
	if err != nil {
		var created models.Task
		if err := s.db.First(&created, "id = ? AND assigned_by = ?", id, identity.UserID).Error; err != nil {
			return ErrTaskNotFound
		}
		task = &created
	}

	isCreator := task.AssignedBy == identity.UserID
	if !isCreator && !identity.IsAdmin() && !identity.IsManager() {
		return ErrNotAllowed
	}

	if err := s.db.Delete(task).Error; err != nil {
		return err
	}

	s.publish(realtime.ActionDelete, task, identity.UserID)
	return nil
}

// load fetches a task through the identity's scope, so cross-tenant ids
// surface as not-found rather than leaking existence.
func (s *TaskService) load(identity *tenant.Identity, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.Scopes(tenant.TasksFor(identity)).First(&task, "id = ?", id).Error
	if err != nil {
		return nil, ErrTaskNotFound
	}
	return &task, nil
}

func (s *TaskService) publish(action string, task *models.Task, actorID uuid.UUID) {
	var recipients []uuid.UUID
	if task.AssignedTo != nil {
		recipients = append(recipients, *task.AssignedTo)
	}
	companyID := task.CompanyID
	s.hub.Publish(realtime.Event{
		Table:      realtime.TableTasks,
		Action:     action,
		RowID:      task.ID,
		CompanyID:  &companyID,
		BranchID:   task.BranchID,
		ActorID:    actorID,
		Recipients: recipients,
	})
}
