package models

import "time"

// ClassSession is one dated occurrence of a subject. Two sessions may share
// a date; there is no uniqueness constraint beyond the id.
type ClassSession struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SubjectID   uint      `json:"subject_id" gorm:"index;not null"`
	ProfessorID uint      `json:"professor_id" gorm:"index;not null"`
	Date        string    `json:"date" gorm:"size:10;not null"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
