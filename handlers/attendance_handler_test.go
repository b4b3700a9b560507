package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishebss/fifac-backend/attendance"
	"github.com/rishebss/fifac-backend/models"
)

type fakeStore struct {
	seq  uint
	recs map[uint]models.AttendanceRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: map[uint]models.AttendanceRecord{}}
}

func (f *fakeStore) Upsert(_ context.Context, rec *models.AttendanceRecord) error {
	for id, existing := range f.recs {
		if existing.StudentID == rec.StudentID && existing.Date == rec.Date {
			existing.Status = rec.Status
			existing.Notes = rec.Notes
			existing.UpdatedAt = rec.UpdatedAt
			f.recs[id] = existing
			rec.ID = id
			return nil
		}
	}
	f.seq++
	rec.ID = f.seq
	f.recs[f.seq] = *rec
	return nil
}

func (f *fakeStore) FindByStudentAndRange(_ context.Context, studentID uint, from, to string) ([]models.AttendanceRecord, error) {
	out := []models.AttendanceRecord{}
	for _, r := range f.recs {
		if r.StudentID == studentID && r.Date >= from && r.Date <= to {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeStore) FindByStudent(_ context.Context, studentID uint) ([]models.AttendanceRecord, error) {
	out := []models.AttendanceRecord{}
	for _, r := range f.recs {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id uint) (*models.AttendanceRecord, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, attendance.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeStore) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := f.recs[id]; !ok {
		return false, nil
	}
	delete(f.recs, id)
	return true, nil
}

func (f *fakeStore) DeleteBatch(_ context.Context, ids []uint) error {
	for _, id := range ids {
		delete(f.recs, id)
	}
	return nil
}

func newAttendanceServer() (*echo.Echo, *fakeStore) {
	store := newFakeStore()
	h := NewAttendanceHandler(attendance.NewReconciler(store, zerolog.Nop()))

	e := echo.New()
	e.GET("/attendance", h.List)
	e.POST("/attendance", h.Mark)
	e.DELETE("/attendance/:id", h.Delete)
	e.GET("/attendance/student/:id", h.ListByStudent)
	e.GET("/attendance/student/:id/summary", h.Summary)
	e.DELETE("/attendance/student/:id/month", h.DeleteMonth)
	return e, store
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMarkEndpoint(t *testing.T) {
	e, store := newAttendanceServer()

	rec := doJSON(e, http.MethodPost, "/attendance",
		`{"student_id":1,"date":"2024-03-05","status":"present"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created models.AttendanceRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "2024-03-05", created.Date)
	assert.Equal(t, "present", created.Status)

	// second mark for the same day updates in place
	rec = doJSON(e, http.MethodPost, "/attendance",
		`{"student_id":1,"date":"2024-03-05","status":"absent","notes":"sick"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.AttendanceRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Len(t, store.recs, 1)
	assert.Equal(t, "absent", store.recs[created.ID].Status)
}

func TestMarkEndpointRejectsBadInput(t *testing.T) {
	e, store := newAttendanceServer()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing fields", `{"student_id":1}`, "MISSING_FIELDS"},
		{"unknown status", `{"student_id":1,"date":"2024-03-05","status":"vacation"}`, "VALIDATION_ERROR"},
		{"bad date", `{"student_id":1,"date":"03/05/2024","status":"present"}`, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/attendance", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body["error"])
		})
	}
	assert.Empty(t, store.recs)
}

func seedAttendance(t *testing.T, e *echo.Echo) {
	t.Helper()
	for _, body := range []string{
		`{"student_id":1,"date":"2024-03-20","status":"present"}`,
		`{"student_id":1,"date":"2024-03-01","status":"absent"}`,
		`{"student_id":1,"date":"2024-03-11","status":"leave"}`,
		`{"student_id":1,"date":"2024-04-02","status":"present"}`,
		`{"student_id":2,"date":"2024-03-02","status":"present"}`,
	} {
		rec := doJSON(e, http.MethodPost, "/attendance", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestListEndpoints(t *testing.T) {
	e, _ := newAttendanceServer()
	seedAttendance(t, e)

	rec := doJSON(e, http.MethodGet, "/attendance/student/1?year=2024&month=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []models.AttendanceRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-03-01", rows[0].Date)
	assert.Equal(t, "2024-03-20", rows[2].Date)

	rec = doJSON(e, http.MethodGet, "/attendance?studentId=1&startDate=2024-03-10&endDate=2024-04-30", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rows = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-03-11", rows[0].Date)
	assert.Equal(t, "2024-04-02", rows[2].Date)

	rec = doJSON(e, http.MethodGet, "/attendance?year=2024&month=3", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "studentId is required")

	rec = doJSON(e, http.MethodGet, "/attendance/student/1?year=2024", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "month is required")
}

func TestSummaryEndpoint(t *testing.T) {
	e, _ := newAttendanceServer()
	seedAttendance(t, e)

	rec := doJSON(e, http.MethodGet, "/attendance/student/1/summary?year=2024&month=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_days":31,"present":1,"absent":1,"leave":1,"percentage":3}`, rec.Body.String())

	// month with no records keeps the calendar-day total
	rec = doJSON(e, http.MethodGet, "/attendance/student/5/summary?year=2024&month=4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_days":30,"present":0,"absent":0,"leave":0,"percentage":0}`, rec.Body.String())
}

func TestDeleteEndpoints(t *testing.T) {
	e, store := newAttendanceServer()
	seedAttendance(t, e)

	rec := doJSON(e, http.MethodDelete, "/attendance/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/attendance/student/1/month?year=2024&month=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":3}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/attendance/student/1?year=2024&month=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	// the April record and the other student's March record survive
	assert.Len(t, store.recs, 2)

	var surviving uint
	for id := range store.recs {
		surviving = id
		break
	}
	rec = doJSON(e, http.MethodDelete, "/attendance/"+itoa(surviving), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func itoa(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}
