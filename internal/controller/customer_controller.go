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

type CustomerInput struct {
	Name            string  `json:"name" validate:"required,max=255"`
	Email           string  `json:"email" validate:"required,email,max=255"`
	Phone           string  `json:"phone" validate:"omitempty,max=20"`
	Company         string  `json:"company" validate:"omitempty,max=255"`
	Address         string  `json:"address"`
	Notes           string  `json:"notes"`
	Status          string  `json:"status" validate:"required,oneof=active inactive prospect"`
	LifetimeValue   float64 `json:"lifetime_value" validate:"gte=0"`
	LastContactDate string  `json:"last_contact_date" validate:"omitempty,datetime=2006-01-02"`
}

func validCustomerStatus(s string) bool {
	switch model.CustomerStatus(s) {
	case model.CustomerStatusActive, model.CustomerStatusInactive, model.CustomerStatusProspect:
		return true
	}
	return false
}

func ListCustomers(c *fiber.Ctx) error {
	claims := currentUser(c)

	query := database.GetDB().Model(&model.Customer{}).Where("user_id = ?", claims.UserID)

	if status := c.Query("status"); validCustomerStatus(status) {
		query = query.Where("status = ?", status)
	}
	query = applySearch(query, c.Query("search"), "name", "email", "company")

	var customers []model.Customer
	meta, err := pagination.Paginate(query, c.QueryInt("page", 1), &customers)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": customers,
		"meta": meta,
		"filters": fiber.Map{
			"status": c.Query("status"),
			"search": c.Query("search"),
		},
	})
}

func NewCustomer(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{})
}

func CreateCustomer(c *fiber.Ctx) error {
	claims := currentUser(c)

	input := new(CustomerInput)
	if err := c.BodyParser(input); err != nil {
		return apperror.BadRequest("Invalid input")
	}
	if errs := validation.Struct(input); errs.Any() {
		return apperror.Validation(errs)
	}

	db := database.GetDB()

	// Customer emails are unique across all users, not per user.
	var count int64
	if err := db.Model(&model.Customer{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperror.Conflict("This email is already registered as a customer.")
	}

	customer := model.Customer{
		UserID:          claims.UserID,
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		Company:         input.Company,
		Address:         input.Address,
		Notes:           input.Notes,
		Status:          model.CustomerStatus(input.Status),
		LifetimeValue:   input.LifetimeValue,
		LastContactDate: parseDate(input.LastContactDate),
	}

	if err := db.Create(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("This email is already registered as a customer.")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Customer created successfully.",
		"customer": customer,
	})
}

func GetCustomer(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Customer")
	}

	var customer model.Customer
	if err := database.GetDB().
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("projects.created_at DESC")
		}).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at DESC")
		}).
		First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Customer")
		}
		return err
	}

	if customer.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this customer")
	}

	return c.JSON(fiber.Map{"customer": customer})
}

func EditCustomer(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Customer")
	}

	var customer model.Customer
	if err := database.GetDB().First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Customer")
		}
		return err
	}

	if customer.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this customer")
	}

	return c.JSON(fiber.Map{"customer": customer})
}

func UpdateCustomer(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Customer")
	}

	db := database.GetDB()

	var customer model.Customer
	if err := db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Customer")
		}
		return err
	}
	if customer.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this customer")
	}

	input := new(CustomerInput)
	if err := c.BodyParser(input); err != nil {
		return apperror.BadRequest("Invalid input")
	}
	if errs := validation.Struct(input); errs.Any() {
		return apperror.Validation(errs)
	}

	var count int64
	if err := db.Model(&model.Customer{}).Where("email = ? AND id <> ?", input.Email, customer.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperror.Conflict("This email is already registered as a customer.")
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Company = input.Company
	customer.Address = input.Address
	customer.Notes = input.Notes
	customer.Status = model.CustomerStatus(input.Status)
	customer.LifetimeValue = input.LifetimeValue
	customer.LastContactDate = parseDate(input.LastContactDate)

	if err := db.Save(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("This email is already registered as a customer.")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "Customer updated successfully.",
		"customer": customer,
	})
}

func DeleteCustomer(c *fiber.Ctx) error {
	claims := currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperror.NotFound("Customer")
	}

	db := database.GetDB()

	var customer model.Customer
	if err := db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Customer")
		}
		return err
	}
	if customer.UserID != claims.UserID {
		return apperror.Forbidden("You don't have permission to access this customer")
	}

	// Projects and tasks survive the customer, they just lose the link.
	tx := db.Begin()
	if err := tx.Model(&model.Project{}).Where("customer_id = ?", customer.ID).Update("customer_id", nil).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(&model.Task{}).Where("customer_id = ?", customer.ID).Update("customer_id", nil).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Unscoped().Delete(&customer).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Customer deleted successfully."})
}
