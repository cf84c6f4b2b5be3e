package model

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`

	// Deleting a user takes all of their CRM data with it.
	Leads     []Lead     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Customers []Customer `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Projects  []Project  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Tasks     []Task     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
