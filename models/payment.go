package models

import "time"

// A fee payment record. Amount is in the smallest currency unit.
type Payment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student_id" gorm:"index;not null"`
	Amount    int64     `json:"amount" gorm:"not null"`
	Method    string    `json:"method" gorm:"size:20;not null"`      // cash | transfer | card
	Month     string    `json:"month" gorm:"size:7;not null;index"`  // fee period, YYYY-MM
	PaidAt    string    `json:"paid_at" gorm:"size:10;not null"`     // YYYY-MM-DD
	ReceiptNo string    `json:"receipt_no" gorm:"size:40;uniqueIndex;not null"`
	Note      string    `json:"note" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
