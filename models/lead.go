package models

import "time"

// A sales lead. Status moves new → contacted → enrolled | lost.
type Lead struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Phone     string    `json:"phone" gorm:"size:15;not null"`
	Email     string    `json:"email" gorm:"size:120"`
	Source    string    `json:"source" gorm:"size:20;not null"`       // walk-in | referral | online | other
	Status    string    `json:"status" gorm:"size:20;not null;index"` // new | contacted | enrolled | lost
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
