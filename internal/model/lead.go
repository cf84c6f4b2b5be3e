package model

import (
	"time"

	"gorm.io/gorm"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusLost      LeadStatus = "lost"
	LeadStatusConverted LeadStatus = "converted"
)

type LeadPriority string

const (
	LeadPriorityLow    LeadPriority = "low"
	LeadPriorityMedium LeadPriority = "medium"
	LeadPriorityHigh   LeadPriority = "high"
)

type Lead struct {
	gorm.Model
	UserID       uint         `json:"user_id" gorm:"index;not null"`
	Name         string       `json:"name" gorm:"not null"`
	Email        string       `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string       `json:"phone"`
	Company      string       `json:"company"`
	Notes        string       `json:"notes" gorm:"type:text"`
	Status       LeadStatus   `json:"status" gorm:"index;default:'new'"`
	Priority     LeadPriority `json:"priority" gorm:"default:'medium'"`
	Value        *float64     `json:"value" gorm:"type:decimal(10,2)"`
	FollowUpDate *time.Time   `json:"follow_up_date" gorm:"index"`

	User  User   `json:"-" gorm:"foreignKey:UserID"`
	Tasks []Task `json:"tasks,omitempty" gorm:"constraint:OnDelete:SET NULL"`
}

// IsActive reports whether the lead is still in play.
func (l *Lead) IsActive() bool {
	return l.Status != LeadStatusLost && l.Status != LeadStatusConverted
}

// NeedsFollowUp reports whether the follow-up date has come due for a lead
// that is still active. Lost and converted leads never need follow-up.
func (l *Lead) NeedsFollowUp(now time.Time) bool {
	if !l.IsActive() {
		return false
	}
	return l.FollowUpDate != nil && !l.FollowUpDate.After(now)
}
