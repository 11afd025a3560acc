package models

import "time"

type Student struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FirstName   string    `json:"first_name" gorm:"size:100;not null"`
	LastName    string    `json:"last_name" gorm:"size:100;not null"`
	Email       string    `json:"email" gorm:"size:100;uniqueIndex;not null"` // unique across all professors
	ProfessorID uint      `json:"professor_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
