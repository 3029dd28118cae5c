package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:120;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null"` // trade role, e.g. "Dozer Operator"
	IsAdmin      bool   `gorm:"default:false"`

	Attempts []Attempt       `gorm:"constraint:OnDelete:CASCADE"`
	Payments []PaymentRecord `gorm:"constraint:OnDelete:CASCADE"`
}
