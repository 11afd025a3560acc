package models

import "time"

// Subject names are unique per professor, not globally.
type Subject struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null;uniqueIndex:idx_subjects_owner_name"`
	ProfessorID uint      `json:"professor_id" gorm:"not null;uniqueIndex:idx_subjects_owner_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
