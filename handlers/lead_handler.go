package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rishebss/fifac-backend/database"
	"github.com/rishebss/fifac-backend/models"
)

type LeadHandler struct{}

func NewLeadHandler() *LeadHandler { return &LeadHandler{} }

type leadPayload struct {
	Name   string `json:"name" validate:"required,max=100"`
	Phone  string `json:"phone" validate:"required,max=15"`
	Email  string `json:"email" validate:"omitempty,email,max=120"`
	Source string `json:"source" validate:"required,oneof=walk-in referral online other"`
	Status string `json:"status" validate:"required,oneof=new contacted enrolled lost"`
	Notes  string `json:"notes"`
}

func (p *leadPayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.Source = strings.TrimSpace(p.Source)
	p.Status = strings.TrimSpace(p.Status)
	p.Notes = strings.TrimSpace(p.Notes)
}

// GET /leads?q=&status=&source=&page=&limit=
func (h *LeadHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	status := strings.TrimSpace(c.QueryParam("status"))
	source := strings.TrimSpace(c.QueryParam("source"))

	page := atoiOr(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	limit := atoiOr(c.QueryParam("limit"), 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	tx := database.DB.Model(&models.Lead{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", like, like, like)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if source != "" {
		tx = tx.Where("source = ?", source)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Lead
	if err := tx.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// GET /leads/:id
func (h *LeadHandler) Get(c echo.Context) error {
	var lead models.Lead
	if err := database.DB.First(&lead, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, lead)
}

// POST /leads
func (h *LeadHandler) Create(c echo.Context) error {
	var p leadPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	lead := models.Lead{
		Name: p.Name, Phone: p.Phone, Email: p.Email,
		Source: p.Source, Status: p.Status, Notes: p.Notes,
	}
	if err := database.DB.Create(&lead).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, lead)
}

// PUT /leads/:id
func (h *LeadHandler) Update(c echo.Context) error {
	var existing models.Lead
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p leadPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	existing.Name = p.Name
	existing.Phone = p.Phone
	existing.Email = p.Email
	existing.Source = p.Source
	existing.Status = p.Status
	existing.Notes = p.Notes
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /leads/:id
func (h *LeadHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Lead{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

var errAlreadyEnrolled = errors.New("lead already enrolled")

type convertPayload struct {
	StudentCode string `json:"student_code" validate:"required,max=20"`
	Grade       string `json:"grade" validate:"required,max=20"`
}

// POST /leads/:id/convert — enroll the lead as a student in one transaction.
func (h *LeadHandler) Convert(c echo.Context) error {
	var p convertPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.StudentCode = strings.TrimSpace(p.StudentCode)
	p.Grade = strings.TrimSpace(p.Grade)
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	var created models.Student
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var lead models.Lead
		if err := tx.First(&lead, "id = ?", c.Param("id")).Error; err != nil {
			return err
		}
		if lead.Status == "enrolled" {
			return errAlreadyEnrolled
		}
		first, last := splitName(lead.Name)
		created = models.Student{
			StudentCode: p.StudentCode,
			FirstName:   first,
			LastName:    last,
			Phone:       lead.Phone,
			Email:       lead.Email,
			Grade:       p.Grade,
			Status:      "active",
			JoinedAt:    time.Now().Format("2006-01-02"),
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		return tx.Model(&lead).Update("status", "enrolled").Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	case errors.Is(err, errAlreadyEnrolled):
		return c.JSON(http.StatusConflict, map[string]string{"error": "ALREADY_ENROLLED"})
	case err != nil:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, created)
}

// splitName cuts a full name at the last space; everything before is the
// first name, the rest the last name.
func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if i := strings.LastIndex(full, " "); i > 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}
