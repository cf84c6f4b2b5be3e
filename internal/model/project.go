package model

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

type ProjectPriority string

const (
	ProjectPriorityLow    ProjectPriority = "low"
	ProjectPriorityMedium ProjectPriority = "medium"
	ProjectPriorityHigh   ProjectPriority = "high"
	ProjectPriorityUrgent ProjectPriority = "urgent"
)

type Project struct {
	gorm.Model
	UserID      uint            `json:"user_id" gorm:"index;not null"`
	CustomerID  *uint           `json:"customer_id" gorm:"index"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Status      ProjectStatus   `json:"status" gorm:"index;default:'planning'"`
	Priority    ProjectPriority `json:"priority" gorm:"default:'medium'"`
	Budget      *float64        `json:"budget" gorm:"type:decimal(12,2)"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	// Progress is a percentage, 0 through 100.
	Progress int `json:"progress" gorm:"default:0"`

	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Tasks    []Task    `json:"tasks,omitempty" gorm:"constraint:OnDelete:SET NULL"`
}
