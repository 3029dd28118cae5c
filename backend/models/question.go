package models

import "gorm.io/gorm"

// Question is an immutable content record. The correct option is always one of
// the language-independent labels A/B/C/D and is never translated. The only
// mutation this backend performs is the lazy backfill of the Urdu columns.
type Question struct {
	gorm.Model
	Role          string `gorm:"size:50;not null;index"`
	QuestionText  string `gorm:"type:text;not null"`
	OptionA       string `gorm:"size:255;not null"`
	OptionB       string `gorm:"size:255;not null"`
	OptionC       string `gorm:"size:255;not null"`
	OptionD       string `gorm:"size:255;not null"`
	CorrectOption string `gorm:"size:1;not null"`

	// Optional Urdu translations, filled at most once per field.
	QuestionTextUR string `gorm:"column:question_text_ur;type:text"`
	OptionAUR      string `gorm:"column:option_a_ur;size:255"`
	OptionBUR      string `gorm:"column:option_b_ur;size:255"`
	OptionCUR      string `gorm:"column:option_c_ur;size:255"`
	OptionDUR      string `gorm:"column:option_d_ur;size:255"`
}

// OptionLabels are the valid values for a submitted answer and for CorrectOption.
var OptionLabels = []string{"A", "B", "C", "D"}

func ValidOptionLabel(label string) bool {
	for _, l := range OptionLabels {
		if l == label {
			return true
		}
	}
	return false
}
