package model

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

type Task struct {
	gorm.Model
	UserID       uint         `json:"user_id" gorm:"index;not null"`
	ProjectID    *uint        `json:"project_id" gorm:"index"`
	CustomerID   *uint        `json:"customer_id" gorm:"index"`
	LeadID       *uint        `json:"lead_id" gorm:"index"`
	Title        string       `json:"title" gorm:"not null"`
	Description  string       `json:"description" gorm:"type:text"`
	Status       TaskStatus   `json:"status" gorm:"index;default:'pending'"`
	Priority     TaskPriority `json:"priority" gorm:"default:'medium'"`
	DueDate      *time.Time   `json:"due_date" gorm:"index"`
	ReminderDate *time.Time   `json:"reminder_date" gorm:"index"`
	ReminderSent bool         `json:"reminder_sent" gorm:"default:false"`
	CompletedAt  *time.Time   `json:"completed_at"`

	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Project  *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Lead     *Lead     `json:"lead,omitempty" gorm:"foreignKey:LeadID"`
}

// IsPending reports whether the task still needs work.
func (t *Task) IsPending() bool {
	return t.Status != TaskStatusCompleted && t.Status != TaskStatusCancelled
}

// IsOverdue reports whether a pending task has slipped past its due date.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.IsPending() && t.DueDate != nil && t.DueDate.Before(now)
}

// IsDueToday reports whether a pending task is due on the same calendar day
// as now, in now's location.
func (t *Task) IsDueToday(now time.Time) bool {
	if !t.IsPending() || t.DueDate == nil {
		return false
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)
	due := t.DueDate.In(now.Location())
	return !due.Before(start) && due.Before(end)
}

// ApplyStatusChange moves the task to newStatus and keeps CompletedAt in
// sync: stamped when the task becomes completed, preserved while it stays
// completed, cleared as soon as it moves away.
func (t *Task) ApplyStatusChange(newStatus TaskStatus, now time.Time) {
	if newStatus == TaskStatusCompleted {
		if t.Status != TaskStatusCompleted || t.CompletedAt == nil {
			t.CompletedAt = &now
		}
	} else {
		t.CompletedAt = nil
	}
	t.Status = newStatus
}
