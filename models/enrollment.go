package models

import "time"

// Enrollment links a student to a subject. A pair may exist at most once.
type Enrollment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_enrollments_student_subject"`
	SubjectID uint      `json:"subject_id" gorm:"not null;uniqueIndex:idx_enrollments_student_subject"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
