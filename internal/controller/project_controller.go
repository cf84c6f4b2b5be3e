package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/appdotbuilder/crm-manager/internal/model"
	"github.com/appdotbuilder/crm-manager/pkg/apperror"
	"github.com/appdotbuilder/crm-manager/pkg/database"
	"github.com/appdotbuilder/crm-manager/pkg/pagination"
	"github.com/appdotbuilder/crm-manager/pkg/validation"
)

type ProjectInput struct {
	CustomerID  *uint    `json:"customer_id"`
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description"`
	Status      string   `json:"status" validate:"required,oneof=planning active on_hold completed cancelled"`
	Priority    string   `json:"priority" validate:"required,oneof=low medium high urgent"`
	Budget      *float64 `json:"budget" validate:"omitempty,gte=0"`
	StartDate   string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Progress    int      `json:"progress" validate:"gte=0,lte=100"`
}

func (in *ProjectInput) validate() validation.Errors {
	errs := validation.Struct(in)
	if in.StartDate != "" && in.EndDate != "" && in.EndDate < in.StartDate {
		errs.Add("end_date", "End date must be after or equal to start date.")
	}
	return errs
}

func validProjectStatus(s string) bool {
	switch model.ProjectStatus(s) {
	case model.ProjectStatusPlanning, model.ProjectStatusActive, model.ProjectStatusOnHold,
		model.ProjectStatusCompleted, model.ProjectStatusCancelled:
		return true
	}
	return false
}

func validProjectPriority(s string) bool {
	switch model.ProjectPriority(s) {
	case model.ProjectPriorityLow, model.ProjectPriorityMedium,
		model.ProjectPriorityHigh, model.ProjectPriorityUrgent:
		return true
	}
	return false
}

func ListProjects(c *fiber.Ctx) error {
	claims := currentUser(c)

	query := database.GetDB().Model(&model.Project{}).
		Where("user_id = ?", claims.UserID).
		Preload("Customer")

	if status := c.Query("status"); validProjectStatus(status) {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); validProjectPriority(priority) {
		query = query.Where("priority = ?", priority)
	}
	if customerID := c.QueryInt("customer_id", 0); customerID > 0 {
		query = query.Where("customer_id = ?", customerID)
	}
	query = applySearch(query, c.Query("search"), "name", "description")

	var projects []model.Project
	meta, err := pagination.Paginate(query, c.QueryInt("page", 1), &projects)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": projects,
		"meta": meta,
		"filters": fiber.Map{
			"status":      c.Query("status"),
			"priority":    c.Query("priority"),
			"customer_id": c.Query("customer_id"),
			"search":      c.Query("search"),
		},
	})
}

// NewProject serves the create form scaffolding with the user's customers
// for the dropdown.
func NewProject(c *fiber.Ctx) error {
	claims := currentUser(c)

	customers, err := nameOptions(database.GetDB(), &model.Customer{}, claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"customers": customers})
}

func CreateProject(c *fiber.Ctx) error {
	claims := currentUser(c)

	input := new(ProjectInput)
	if err := c.BodyParser(input); err != nil {
		return apperror.BadRequest("Invalid input")
	}
	if errs := input.validate(); errs.Any() {
		return apperror.Validation(errs)
	}

	db := database.GetDB()

	ok, err := ownedCustomerExists(db, claims.UserID, input.CustomerID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Reference("Selected customer does not exist.")
	}

	project := model.Project{
		UserID:      claims.UserID,
		CustomerID:  input.CustomerID,
		Name:        input.Name,
		Description: input.Description,
		Status:      model.ProjectStatus(input.Status),
		Priority:    model.ProjectPriority(input.Priority),
		Budget:      input.Budget,
		StartDate:   parseDate(input.StartDate),
		EndDate:     parseDate(input.EndDate),
		Progress:    input.Progress,
	}

	if err := db.Create(&project).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Project created successfully.",
		"project": project,
	})
}

func GetProject(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Project")
	}

	var project model.Project
	if err := database.GetDB().
		Preload("Customer").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at DESC")
		}).
		First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Project")
		}
		return err
	}

	if project.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this project")
	}

	return c.JSON(fiber.Map{"project": project})
}

func EditProject(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Project")
	}

	var project model.Project
	if err := database.GetDB().First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Project")
		}
		return err
	}

	if project.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this project")
	}

	customers, err := nameOptions(database.GetDB(), &model.Customer{}, claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"project":   project,
		"customers": customers,
	})
}

func UpdateProject(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Project")
	}

	db := database.GetDB()

	var project model.Project
	if err := db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Project")
		}
		return err
	}
	if project.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this project")
	}

	input := new(ProjectInput)
	if err := c.BodyParser(input); err != nil {
		return apperror.BadRequest("Invalid input")
	}
	if errs := input.validate(); errs.Any() {
		return apperror.Validation(errs)
	}

	ok, err := ownedCustomerExists(db, claims.UserID, input.CustomerID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Reference("Selected customer does not exist.")
	}

	project.CustomerID = input.CustomerID
	project.Name = input.Name
	project.Description = input.Description
	project.Status = model.ProjectStatus(input.Status)
	project.Priority = model.ProjectPriority(input.Priority)
	project.Budget = input.Budget
	project.StartDate = parseDate(input.StartDate)
	project.EndDate = parseDate(input.EndDate)
	project.Progress = input.Progress

	if err := db.Save(&project).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Project updated successfully.",
		"project": project,
	})
}

func DeleteProject(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Project")
	}

	db := database.GetDB()

	var project model.Project
	if err := db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Project")
		}
		return err
	}
	if project.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this project")
	}

	tx := db.Begin()
	if err := tx.Model(&model.Task{}).Where("project_id = ?", project.ID).Update("project_id", nil).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Unscoped().Delete(&project).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Project deleted successfully."})
}
