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

type LeadInput struct {
	Name         string   `json:"name" validate:"required,max=255"`
	Email        string   `json:"email" validate:"required,email,max=255"`
	Phone        string   `json:"phone" validate:"omitempty,max=20"`
	Company      string   `json:"company" validate:"omitempty,max=255"`
	Notes        string   `json:"notes"`
	Status       string   `json:"status" validate:"required,oneof=new contacted qualified lost converted"`
	Priority     string   `json:"priority" validate:"required,oneof=low medium high"`
	Value        *float64 `json:"value" validate:"omitempty,gte=0"`
	FollowUpDate string   `json:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
}

func (in *LeadInput) validate() validation.Errors {
	errs := validation.Struct(in)
	if parseDate(in.FollowUpDate) != nil && in.FollowUpDate < time.Now().Format(dateLayout) {
		errs.Add("follow_up_date", "Follow-up date cannot be in the past.")
	}
	return errs
}

func validLeadStatus(s string) bool {
	switch model.LeadStatus(s) {
	case model.LeadStatusNew, model.LeadStatusContacted, model.LeadStatusQualified,
		model.LeadStatusLost, model.LeadStatusConverted:
		return true
	}
	return false
}

func validLeadPriority(s string) bool {
	switch model.LeadPriority(s) {
	case model.LeadPriorityLow, model.LeadPriorityMedium, model.LeadPriorityHigh:
		return true
	}
	return false
}

// ListLeads returns one page of the user's leads. Unknown status/priority
// values are ignored rather than rejected.
func ListLeads(c *fiber.Ctx) error {
	claims := currentUser(c)

	query := database.GetDB().Model(&model.Lead{}).Where("user_id = ?", claims.UserID)

	if status := c.Query("status"); validLeadStatus(status) {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); validLeadPriority(priority) {
		query = query.Where("priority = ?", priority)
	}
	switch c.Query("scope") {
	case "active":
		query = query.Scopes(model.ScopeActiveLeads)
	case "needs_follow_up":
		query = query.Scopes(model.ScopeNeedsFollowUp(time.Now()))
	}
	query = applySearch(query, c.Query("search"), "name", "email", "company")

	var leads []model.Lead
	meta, err := pagination.Paginate(query, c.QueryInt("page", 1), &leads)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": leads,
		"meta": meta,
		"filters": fiber.Map{
			"status":   c.Query("status"),
			"priority": c.Query("priority"),
			"search":   c.Query("search"),
		},
	})
}

// NewLead serves the create form scaffolding. Leads have no dropdown
// relations, so there is nothing to return.
func NewLead(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{})
}

func CreateLead(c *fiber.Ctx) error {
	claims := currentUser(c)

	input := new(LeadInput)
	if err := c.BodyParser(input); err != nil {
		return apperror.BadRequest("Invalid input")
	}
	if errs := input.validate(); errs.Any() {
		return apperror.Validation(errs)
	}

	db := database.GetDB()

	// Lead emails are unique across all users, not per user.
	var count int64
	if err := db.Model(&model.Lead{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperror.Conflict("This email is already registered as a lead.")
	}

	lead := model.Lead{
		UserID:       claims.UserID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Company:      input.Company,
		Notes:        input.Notes,
		Status:       model.LeadStatus(input.Status),
		Priority:     model.LeadPriority(input.Priority),
		Value:        input.Value,
		FollowUpDate: parseDate(input.FollowUpDate),
	}

	if err := db.Create(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("This email is already registered as a lead.")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Lead created successfully.",
		"lead":    lead,
	})
}

func GetLead(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Lead")
	}

	var lead model.Lead
	if err := database.GetDB().
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at DESC")
		}).
		First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Lead")
		}
		return err
	}

	if lead.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this lead")
	}

	return c.JSON(fiber.Map{"lead": lead})
}

func EditLead(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Lead")
	}

	var lead model.Lead
	if err := database.GetDB().First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Lead")
		}
		return err
	}

	if lead.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this lead")
	}

	return c.JSON(fiber.Map{"lead": lead})
}

func UpdateLead(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Lead")
	}

	db := database.GetDB()

	var lead model.Lead
	if err := db.First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Lead")
		}
		return err
	}
	if lead.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this lead")
	}

	input := new(LeadInput)
	if err := c.BodyParser(input); err != nil {
		return apperror.BadRequest("Invalid input")
	}
	if errs := input.validate(); errs.Any() {
		return apperror.Validation(errs)
	}

	var count int64
	if err := db.Model(&model.Lead{}).Where("email = ? AND id <> ?", input.Email, lead.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperror.Conflict("This email is already registered as a lead.")
	}

	lead.Name = input.Name
	lead.Email = input.Email
	lead.Phone = input.Phone
	lead.Company = input.Company
	lead.Notes = input.Notes
	lead.Status = model.LeadStatus(input.Status)
	lead.Priority = model.LeadPriority(input.Priority)
	lead.Value = input.Value
	lead.FollowUpDate = parseDate(input.FollowUpDate)

	if err := db.Save(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("This email is already registered as a lead.")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Lead updated successfully.",
		"lead":    lead,
	})
}

func DeleteLead(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Lead")
	}

	db := database.GetDB()

	var lead model.Lead
	if err := db.First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Lead")
		}
		return err
	}
	if lead.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this lead")
	}

	// Detach dependent tasks and delete in one transaction. The delete is
	// permanent so the unique email becomes available again.
	tx := db.Begin()
	if err := tx.Model(&model.Task{}).Where("lead_id = ?", lead.ID).Update("lead_id", nil).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Unscoped().Delete(&lead).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Lead deleted successfully."})
}
