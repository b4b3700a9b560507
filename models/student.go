package models

import "time"

type Student struct {
	ID          uint      `gorm:"primaryKey"                   json:"id"`
	StudentCode string    `gorm:"size:20;uniqueIndex;not null" json:"student_code"`
	FirstName   string    `gorm:"size:50;not null"             json:"first_name"`
	LastName    string    `gorm:"size:50;not null"             json:"last_name"`
	Phone       string    `gorm:"size:15;not null"             json:"phone"`
	Email       string    `gorm:"size:120"                     json:"email"`
	Grade       string    `gorm:"size:20;not null"             json:"grade"`
	Status      string    `gorm:"size:20;not null"             json:"status"`    // active | inactive
	JoinedAt    string    `gorm:"size:10"                      json:"joined_at"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
