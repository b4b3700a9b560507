package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rishebss/fifac-backend/database"
	"github.com/rishebss/fifac-backend/models"
)

type PaymentHandler struct{}

func NewPaymentHandler() *PaymentHandler { return &PaymentHandler{} }

type paymentPayload struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Method    string `json:"method" validate:"required,oneof=cash transfer card"`
	Month     string `json:"month" validate:"required,datetime=2006-01"`
	PaidAt    string `json:"paid_at" validate:"omitempty,datetime=2006-01-02"`
	Note      string `json:"note"`
}

func (p *paymentPayload) normalize() {
	p.Method = strings.TrimSpace(p.Method)
	p.Month = strings.TrimSpace(p.Month)
	p.PaidAt = strings.TrimSpace(p.PaidAt)
	p.Note = strings.TrimSpace(p.Note)
}

// GET /payments?studentId=&month=&limit=&offset=
func (h *PaymentHandler) List(c echo.Context) error {
	studentID := strings.TrimSpace(c.QueryParam("studentId"))
	month := strings.TrimSpace(c.QueryParam("month"))

	limit := atoiOr(c.QueryParam("limit"), 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := atoiOr(c.QueryParam("offset"), 0)
	if offset < 0 {
		offset = 0
	}

	tx := database.DB.Model(&models.Payment{})
	if studentID != "" {
		tx = tx.Where("student_id = ?", studentID)
	}
	if month != "" {
		tx = tx.Where("month = ?", month)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Payment
	if err := tx.Order("paid_at DESC, id DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":   items,
		"limit":  limit,
		"offset": offset,
		"total":  total,
	})
}

// GET /payments/:id
func (h *PaymentHandler) Get(c echo.Context) error {
	var pm models.Payment
	if err := database.DB.First(&pm, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, pm)
}

// POST /payments
func (h *PaymentHandler) Create(c echo.Context) error {
	var p paymentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}
	if p.PaidAt == "" {
		p.PaidAt = time.Now().Format("2006-01-02")
	}

	pm := models.Payment{
		StudentID: p.StudentID,
		Amount:    p.Amount,
		Method:    p.Method,
		Month:     p.Month,
		PaidAt:    p.PaidAt,
		ReceiptNo: "RC-" + uuid.NewString(),
		Note:      p.Note,
	}
	if err := database.DB.Create(&pm).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, pm)
}

// PUT /payments/:id — receipt number and student are immutable.
func (h *PaymentHandler) Update(c echo.Context) error {
	var existing models.Payment
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p paymentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.StudentID = existing.StudentID
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}
	if p.PaidAt == "" {
		p.PaidAt = existing.PaidAt
	}

	existing.Amount = p.Amount
	existing.Method = p.Method
	existing.Month = p.Month
	existing.PaidAt = p.PaidAt
	existing.Note = p.Note
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /payments/:id
func (h *PaymentHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Payment{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /payments/summary?month=YYYY-MM
func (h *PaymentHandler) MonthSummary(c echo.Context) error {
	month := strings.TrimSpace(c.QueryParam("month"))
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"month": "must be YYYY-MM"},
		})
	}

	var out struct {
		Total int64 `json:"total"`
		Count int64 `json:"count"`
	}
	err := database.DB.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("month = ?", month).
		Scan(&out).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"month": month,
		"total": out.Total,
		"count": out.Count,
	})
}
