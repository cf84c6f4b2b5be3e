package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/appdotbuilder/crm-manager/internal/model"
	"github.com/appdotbuilder/crm-manager/pkg/utils/jwt"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

func currentUser(c *fiber.Ctx) *jwt.Claims {
	return c.Locals("user").(*jwt.Claims)
}

// parseDate returns nil for empty or malformed values; format errors are
// already reported by the input validation tags.
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

func parseDateTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateTimeLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

// applySearch adds a case-insensitive contains match, OR-combined across the
// given columns. The OR group is parenthesized so it cannot widen the
// ownership filter.
func applySearch(query *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" {
		return query
	}
	pattern := "%" + strings.ToLower(term) + "%"
	conds := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		conds[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return query.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// Option is a dropdown entry for the create/edit form scaffolding.
type Option struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func nameOptions(db *gorm.DB, mdl interface{}, userID uint) ([]Option, error) {
	opts := []Option{}
	err := db.Model(mdl).
		Select("id", "name").
		Where("user_id = ?", userID).
		Order("name").
		Find(&opts).Error
	return opts, err
}

// The reference checks below verify that a nullable foreign key points at a
// row the requesting user owns. Cross-user linkage is rejected the same way
// as a missing row.

func ownedCustomerExists(db *gorm.DB, userID uint, id *uint) (bool, error) {
	if id == nil {
		return true, nil
	}
	var count int64
	err := db.Model(&model.Customer{}).Where("id = ? AND user_id = ?", *id, userID).Count(&count).Error
	return count > 0, err
}

func ownedProjectExists(db *gorm.DB, userID uint, id *uint) (bool, error) {
	if id == nil {
		return true, nil
	}
	var count int64
	err := db.Model(&model.Project{}).Where("id = ? AND user_id = ?", *id, userID).Count(&count).Error
	return count > 0, err
}

func ownedLeadExists(db *gorm.DB, userID uint, id *uint) (bool, error) {
	if id == nil {
		return true, nil
	}
	var count int64
	err := db.Model(&model.Lead{}).Where("id = ? AND user_id = ?", *id, userID).Count(&count).Error
	return count > 0, err
}
