package models

import "time"

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// Attendance is a write-once mark for one (session, student) pair.
// A student with no row for a session counts as absent; absence is
// computed at read time, never stored.
type Attendance struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ClassSessionID uint      `json:"class_session_id" gorm:"not null;uniqueIndex:idx_attendances_session_student"`
	StudentID      uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_attendances_session_student"`
	Status         string    `json:"status" gorm:"size:10;not null"` // present | absent
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
