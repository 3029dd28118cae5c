package models

import "gorm.io/gorm"

// Attempt is one scored submission in a user's history. AttemptNumber is dense
// and 1-based per user; the composite unique index is what turns a concurrent
// double-append into a conflict instead of a duplicate slot.
type Attempt struct {
	gorm.Model
	UserID        uint `gorm:"not null;uniqueIndex:idx_attempts_user_number"`
	Score         int  `gorm:"not null"`
	AttemptNumber int  `gorm:"not null;uniqueIndex:idx_attempts_user_number"`
	Passed        bool `gorm:"default:false"`
}
