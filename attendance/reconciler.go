// Package attendance keeps per-day attendance records consistent: one record
// per student per calendar day, upserted in place, queried by month or date
// range, summarized, and deleted individually or in monthly batches.
package attendance

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/rishebss/fifac-backend/models"
)

const dayLayout = "2006-01-02"

type Summary struct {
	TotalDays  int `json:"total_days"`
	Present    int `json:"present"`
	Absent     int `json:"absent"`
	Leave      int `json:"leave"`
	Percentage int `json:"percentage"`
}

type Reconciler struct {
	store Store
	log   zerolog.Logger
}

func NewReconciler(store Store, log zerolog.Logger) *Reconciler {
	return &Reconciler{store: store, log: log}
}

// Mark records status for the student's calendar day, creating the record on
// first call and updating status/notes/updated_at on repeats. The day is the
// host-local calendar day of date. The returned record is built from the
// inputs (id filled back by the store), not re-read.
func (r *Reconciler) Mark(ctx context.Context, studentID uint, date time.Time, status Status, notes string) (*models.AttendanceRecord, error) {
	if studentID == 0 {
		return nil, &ValidationError{Field: "student_id", Message: "required"}
	}
	if date.IsZero() {
		return nil, &ValidationError{Field: "date", Message: "required"}
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	now := time.Now()
	rec := &models.AttendanceRecord{
		StudentID: studentID,
		Date:      date.Format(dayLayout),
		Status:    string(status),
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.store.Upsert(ctx, rec); err != nil {
		r.log.Error().Err(err).Uint("student_id", studentID).Str("date", rec.Date).Msg("mark attendance failed")
		return nil, err
	}
	return rec, nil
}

// StudentMonth returns the student's records for the 1-indexed month,
// ascending by date.
func (r *Reconciler) StudentMonth(ctx context.Context, studentID uint, year, month int) ([]models.AttendanceRecord, error) {
	from, to := monthRange(year, month)
	return r.StudentRange(ctx, studentID, from, to)
}

// StudentRange returns the student's records with from <= date <= to,
// ascending by date. When the store cannot serve the compound range query
// (ErrMissingIndex) it falls back to scanning the student's full history and
// filtering here; any other store fault propagates untouched. Never nil.
func (r *Reconciler) StudentRange(ctx context.Context, studentID uint, from, to string) ([]models.AttendanceRecord, error) {
	rows, err := r.store.FindByStudentAndRange(ctx, studentID, from, to)
	if err == nil {
		return rows, nil
	}
	if !errors.Is(err, ErrMissingIndex) {
		r.log.Error().Err(err).Uint("student_id", studentID).Msg("attendance range query failed")
		return nil, err
	}
	r.log.Warn().Uint("student_id", studentID).Str("from", from).Str("to", to).
		Msg("attendance index unavailable, filtering client-side")
	all, err := r.store.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	out := make([]models.AttendanceRecord, 0, len(all))
	for _, rec := range all {
		// YYYY-MM-DD strings order lexically == chronologically
		if rec.Date >= from && rec.Date <= to {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// Summary counts the month's records per status. Percentage is present days
// over total calendar days of the month, not over recorded days.
func (r *Reconciler) Summary(ctx context.Context, studentID uint, year, month int) (*Summary, error) {
	rows, err := r.StudentMonth(ctx, studentID, year, month)
	if err != nil {
		return nil, err
	}
	sum := &Summary{TotalDays: daysInMonth(year, month)}
	for _, rec := range rows {
		switch Status(rec.Status) {
		case StatusPresent:
			sum.Present++
		case StatusAbsent:
			sum.Absent++
		case StatusLeave:
			sum.Leave++
		}
	}
	if sum.TotalDays > 0 {
		sum.Percentage = int(math.Round(float64(sum.Present) / float64(sum.TotalDays) * 100))
	}
	return sum, nil
}

// DeleteMonth removes every record the student has inside the month and
// returns how many went. The scan is not isolated from concurrent writers; a
// record marked while the scan runs can survive the batch.
func (r *Reconciler) DeleteMonth(ctx context.Context, studentID uint, year, month int) (int, error) {
	from, to := monthRange(year, month)
	all, err := r.store.FindByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	ids := make([]uint, 0, len(all))
	for _, rec := range all {
		if rec.Date >= from && rec.Date <= to {
			ids = append(ids, rec.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := r.store.DeleteBatch(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Delete removes one record by id. (false, nil) when it did not exist.
func (r *Reconciler) Delete(ctx context.Context, id uint) (bool, error) {
	return r.store.Delete(ctx, id)
}

// monthRange returns the inclusive [first, last] day strings of the
// 1-indexed month. Day 0 of the following month is the last day.
func monthRange(year, month int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local)
	return first.Format(dayLayout), last.Format(dayLayout)
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
