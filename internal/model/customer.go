package model

import (
	"time"

	"gorm.io/gorm"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
	CustomerStatusProspect CustomerStatus = "prospect"
)

type Customer struct {
	gorm.Model
	UserID          uint           `json:"user_id" gorm:"index;not null"`
	Name            string         `json:"name" gorm:"index;not null"`
	Email           string         `json:"email" gorm:"uniqueIndex;not null"`
	Phone           string         `json:"phone"`
	Company         string         `json:"company"`
	Address         string         `json:"address" gorm:"type:text"`
	Notes           string         `json:"notes" gorm:"type:text"`
	Status          CustomerStatus `json:"status" gorm:"index;default:'active'"`
	LifetimeValue   float64        `json:"lifetime_value" gorm:"type:decimal(12,2);default:0"`
	LastContactDate *time.Time     `json:"last_contact_date" gorm:"index"`

	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Projects []Project `json:"projects,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Tasks    []Task    `json:"tasks,omitempty" gorm:"constraint:OnDelete:SET NULL"`
}
