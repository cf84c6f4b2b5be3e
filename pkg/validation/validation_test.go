package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleInput struct {
	Name     string  `json:"name" validate:"required,max=10"`
	Email    string  `json:"email" validate:"required,email"`
	Status   string  `json:"status" validate:"required,oneof=open closed"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	DueDate  string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Progress int     `json:"progress" validate:"gte=0,lte=100"`
}

func TestStructCollectsEveryViolation(t *testing.T) {
	errs := Struct(&sampleInput{
		Email:    "nope",
		Status:   "archived",
		Amount:   -3,
		DueDate:  "31-12-2026",
		Progress: 120,
	})

	assert.True(t, errs.Any())
	assert.Equal(t, []string{"The name field is required."}, errs["name"])
	assert.Equal(t, []string{"Please provide a valid email address."}, errs["email"])
	assert.Equal(t, []string{"Invalid status selected."}, errs["status"])
	assert.Equal(t, []string{"The amount cannot be negative."}, errs["amount"])
	assert.Equal(t, []string{"The due date is not a valid date."}, errs["due_date"])
	assert.Equal(t, []string{"The progress may not be greater than 100."}, errs["progress"])
}

func TestStructValidInput(t *testing.T) {
	errs := Struct(&sampleInput{
		Name:    "Short",
		Email:   "ok@test.local",
		Status:  "open",
		DueDate: "2026-12-31",
	})
	assert.False(t, errs.Any())
	assert.Empty(t, errs)
}

func TestAddAppendsToExistingField(t *testing.T) {
	errs := Errors{}
	errs.Add("end_date", "first")
	errs.Add("end_date", "second")

	assert.Equal(t, []string{"first", "second"}, errs["end_date"])
	assert.True(t, errs.Any())
}
