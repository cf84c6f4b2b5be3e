package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/appdotbuilder/crm-manager/internal/model"
	"github.com/appdotbuilder/crm-manager/pkg/apperror"
	"github.com/appdotbuilder/crm-manager/pkg/database"
	"github.com/appdotbuilder/crm-manager/pkg/pagination"
	"github.com/appdotbuilder/crm-manager/pkg/validation"
)

type TaskInput struct {
	ProjectID    *uint  `json:"project_id"`
	CustomerID   *uint  `json:"customer_id"`
	LeadID       *uint  `json:"lead_id"`
	Title        string `json:"title" validate:"required,max=255"`
	Description  string `json:"description"`
	Status       string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
	Priority     string `json:"priority" validate:"required,oneof=low medium high urgent"`
	DueDate      string `json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ReminderDate string `json:"reminder_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (in *TaskInput) validate() validation.Errors {
	errs := validation.Struct(in)
	due := parseDateTime(in.DueDate)
	reminder := parseDateTime(in.ReminderDate)
	if due != nil && reminder != nil && reminder.After(*due) {
		errs.Add("reminder_date", "Reminder date must be before or equal to due date.")
	}
	return errs
}

func validTaskStatus(s string) bool {
	switch model.TaskStatus(s) {
	case model.TaskStatusPending, model.TaskStatusInProgress,
		model.TaskStatusCompleted, model.TaskStatusCancelled:
		return true
	}
	return false
}

func validTaskPriority(s string) bool {
	switch model.TaskPriority(s) {
	case model.TaskPriorityLow, model.TaskPriorityMedium,
		model.TaskPriorityHigh, model.TaskPriorityUrgent:
		return true
	}
	return false
}

// checkTaskReferences verifies every foreign key on the input against rows
// the user owns.
func checkTaskReferences(db *gorm.DB, userID uint, input *TaskInput) error {
	ok, err := ownedProjectExists(db, userID, input.ProjectID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Reference("Selected project does not exist.")
	}

	ok, err = ownedCustomerExists(db, userID, input.CustomerID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Reference("Selected customer does not exist.")
	}

	ok, err = ownedLeadExists(db, userID, input.LeadID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Reference("Selected lead does not exist.")
	}

	return nil
}

func ListTasks(c *fiber.Ctx) error {
	claims := currentUser(c)

	query := database.GetDB().Model(&model.Task{}).
		Where("user_id = ?", claims.UserID).
		Preload("Project").
		Preload("Customer").
		Preload("Lead")

	if status := c.Query("status"); validTaskStatus(status) {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); validTaskPriority(priority) {
		query = query.Where("priority = ?", priority)
	}
	if projectID := c.QueryInt("project_id", 0); projectID > 0 {
		query = query.Where("project_id = ?", projectID)
	}
	if customerID := c.QueryInt("customer_id", 0); customerID > 0 {
		query = query.Where("customer_id = ?", customerID)
	}
	switch c.Query("scope") {
	case "pending":
		query = query.Scopes(model.ScopePending)
	case "overdue":
		query = query.Scopes(model.ScopeOverdue(time.Now()))
	case "due_today":
		query = query.Scopes(model.ScopeDueToday(time.Now()))
	}
	query = applySearch(query, c.Query("search"), "title", "description")

	var tasks []model.Task
	meta, err := pagination.Paginate(query, c.QueryInt("page", 1), &tasks)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": tasks,
		"meta": meta,
		"filters": fiber.Map{
			"status":      c.Query("status"),
			"priority":    c.Query("priority"),
			"project_id":  c.Query("project_id"),
			"customer_id": c.Query("customer_id"),
			"search":      c.Query("search"),
		},
	})
}

// NewTask serves the create form scaffolding with dropdown options for every
// linkable relation.
func NewTask(c *fiber.Ctx) error {
	claims := currentUser(c)
	db := database.GetDB()

	projects, err := nameOptions(db, &model.Project{}, claims.UserID)
	if err != nil {
		return err
	}
	customers, err := nameOptions(db, &model.Customer{}, claims.UserID)
	if err != nil {
		return err
	}
	leads, err := nameOptions(db, &model.Lead{}, claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"projects":  projects,
		"customers": customers,
		"leads":     leads,
	})
}

func CreateTask(c *fiber.Ctx) error {
	claims := currentUser(c)

	input := new(TaskInput)
	if err := c.BodyParser(input); err != nil {
		return apperror.BadRequest("Invalid input")
	}
	if errs := input.validate(); errs.Any() {
		return apperror.Validation(errs)
	}

	db := database.GetDB()

	if err := checkTaskReferences(db, claims.UserID, input); err != nil {
		return err
	}

	task := model.Task{
		UserID:       claims.UserID,
		ProjectID:    input.ProjectID,
		CustomerID:   input.CustomerID,
		LeadID:       input.LeadID,
		Title:        input.Title,
		Description:  input.Description,
		Priority:     model.TaskPriority(input.Priority),
		DueDate:      parseDateTime(input.DueDate),
		ReminderDate: parseDateTime(input.ReminderDate),
	}
	task.ApplyStatusChange(model.TaskStatus(input.Status), time.Now())

	if err := db.Create(&task).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Task created successfully.",
		"task":    task,
	})
}

func GetTask(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Task")
	}

	var task model.Task
	if err := database.GetDB().
		Preload("Project").
		Preload("Customer").
		Preload("Lead").
		First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Task")
		}
		return err
	}

	if task.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this task")
	}

	return c.JSON(fiber.Map{"task": task})
}

func EditTask(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Task")
	}

	db := database.GetDB()

	var task model.Task
	if err := db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Task")
		}
		return err
	}

	if task.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this task")
	}

	projects, err := nameOptions(db, &model.Project{}, claims.UserID)
	if err != nil {
		return err
	}
	customers, err := nameOptions(db, &model.Customer{}, claims.UserID)
	if err != nil {
		return err
	}
	leads, err := nameOptions(db, &model.Lead{}, claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"task":      task,
		"projects":  projects,
		"customers": customers,
		"leads":     leads,
	})
}

func UpdateTask(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Task")
	}

	db := database.GetDB()

	var task model.Task
	if err := db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Task")
		}
		return err
	}
	if task.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this task")
	}

	input := new(TaskInput)
	if err := c.BodyParser(input); err != nil {
		return apperror.BadRequest("Invalid input")
	}
	if errs := input.validate(); errs.Any() {
		return apperror.Validation(errs)
	}

	if err := checkTaskReferences(db, claims.UserID, input); err != nil {
		return err
	}

	task.ProjectID = input.ProjectID
	task.CustomerID = input.CustomerID
	task.LeadID = input.LeadID
	task.Title = input.Title
	task.Description = input.Description
	task.Priority = model.TaskPriority(input.Priority)
	task.DueDate = parseDateTime(input.DueDate)
	task.ReminderDate = parseDateTime(input.ReminderDate)
	// Status last: the transition decides whether CompletedAt is stamped,
	// preserved or cleared.
	task.ApplyStatusChange(model.TaskStatus(input.Status), time.Now())

	if err := db.Save(&task).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Task updated successfully.",
		"task":    task,
	})
}

func DeleteTask(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Task")
	}

	db := database.GetDB()

	var task model.Task
	if err := db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Task")
		}
		return err
	}
	if task.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this task")
	}

	if err := db.Unscoped().Delete(&task).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Task deleted successfully."})
}
