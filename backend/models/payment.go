package models

import "gorm.io/gorm"

// PaymentRecord stores a repayment made before an attempt reset. Only the fact
// of payment is recorded here; capture and settlement happen elsewhere.
type PaymentRecord struct {
	gorm.Model
	UserID     uint `gorm:"not null;index"`
	Amount     int  `gorm:"not null"`
	Discounted bool `gorm:"default:false"`
}
