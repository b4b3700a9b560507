package models

import "time"

// Daily attendance for one student. At most one row per student per calendar
// day, enforced by the composite unique index; marking the same day again
// updates the row in place.
type AttendanceRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_student_date"`
	Date      string    `json:"date" gorm:"size:10;not null;uniqueIndex:idx_attendance_student_date"` // YYYY-MM-DD
	Status    string    `json:"status" gorm:"size:10;not null"`                                       // present | absent | leave
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
