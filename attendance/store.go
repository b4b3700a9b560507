package attendance

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rishebss/fifac-backend/models"
)

// Store is the persistence surface the reconciler talks to. Range queries may
// return ErrMissingIndex when the composite student+date index is absent;
// every other failure comes back as *StoreError.
type Store interface {
	Upsert(ctx context.Context, rec *models.AttendanceRecord) error
	FindByStudentAndRange(ctx context.Context, studentID uint, from, to string) ([]models.AttendanceRecord, error)
	FindByStudent(ctx context.Context, studentID uint) ([]models.AttendanceRecord, error)
	Get(ctx context.Context, id uint) (*models.AttendanceRecord, error)
	Delete(ctx context.Context, id uint) (bool, error)
	DeleteBatch(ctx context.Context, ids []uint) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

// Upsert inserts, or on a (student_id, date) conflict updates status, notes
// and updated_at in place. The surviving row keeps its id and created_at;
// rec.ID is filled back from the store either way.
func (s *GormStore) Upsert(ctx context.Context, rec *models.AttendanceRecord) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "notes", "updated_at"}),
	}).Create(rec).Error
	if err != nil {
		return &StoreError{Op: "upsert", Err: err}
	}
	return nil
}

func (s *GormStore) FindByStudentAndRange(ctx context.Context, studentID uint, from, to string) ([]models.AttendanceRecord, error) {
	rows := []models.AttendanceRecord{}
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND date >= ? AND date <= ?", studentID, from, to).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		if isMissingSchema(err) {
			return nil, ErrMissingIndex
		}
		return nil, &StoreError{Op: "range query", Err: err}
	}
	return rows, nil
}

func (s *GormStore) FindByStudent(ctx context.Context, studentID uint) ([]models.AttendanceRecord, error) {
	rows := []models.AttendanceRecord{}
	if err := s.db.WithContext(ctx).Where("student_id = ?", studentID).Find(&rows).Error; err != nil {
		return nil, &StoreError{Op: "student query", Err: err}
	}
	return rows, nil
}

func (s *GormStore) Get(ctx context.Context, id uint) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "get", Err: err}
	}
	return &rec, nil
}

func (s *GormStore) Delete(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.AttendanceRecord{}, "id = ?", id)
	if res.Error != nil {
		return false, &StoreError{Op: "delete", Err: res.Error}
	}
	return res.RowsAffected > 0, nil
}

// DeleteBatch removes all ids in one statement, all-or-nothing.
func (s *GormStore) DeleteBatch(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Delete(&models.AttendanceRecord{}, "id IN ?", ids).Error; err != nil {
		return &StoreError{Op: "batch delete", Err: err}
	}
	return nil
}

// isMissingSchema reports whether err means the attendance table or the
// columns backing the composite index have not been migrated yet
// (SQLSTATE 42P01 undefined_table, 42703 undefined_column).
func isMissingSchema(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "42P01" || pgErr.Code == "42703"
}
