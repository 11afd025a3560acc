package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/buckneer/CheckMateV2/database"
	"github.com/buckneer/CheckMateV2/models"
)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

type studentPayload struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

func (p *studentPayload) normalize() {
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
}

type studentOut struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// GET /students
func (h *StudentHandler) List(c echo.Context) error {
	owner := professorID(c)

	var students []models.Student
	if err := database.DB.Where("professor_id = ?", owner).Order("id ASC").Find(&students).Error; err != nil {
		return internalErr(err, "Failed to fetch students.")
	}

	out := make([]studentOut, 0, len(students))
	for _, s := range students {
		out = append(out, studentOut{ID: s.ID, FirstName: s.FirstName, LastName: s.LastName, Email: s.Email})
	}
	msg := "Students fetched successfully!"
	if len(out) == 0 {
		msg = "No students found."
	}
	return c.JSON(http.StatusOK, map[string]any{"message": msg, "students": out})
}

// POST /students
func (h *StudentHandler) Create(c echo.Context) error {
	owner := professorID(c)

	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Invalid payload."})
	}
	p.normalize()
	if err := c.Validate(&p); err != nil {
		return err
	}

	var rec models.Student
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// email is globally unique, whoever owns the existing row
		var cnt int64
		if err := tx.Model(&models.Student{}).Where("email = ?", p.Email).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Student with this email already exists."})
		}
		rec = models.Student{
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Email:       p.Email,
			ProfessorID: owner,
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return storeErr(err, "Student with this email already exists.", "Failed to add student.")
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Student added successfully!",
		"student": studentOut{ID: rec.ID, FirstName: rec.FirstName, LastName: rec.LastName, Email: rec.Email},
	})
}

// GET /students/:id
func (h *StudentHandler) Get(c echo.Context) error {
	owner := professorID(c)
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var s models.Student
	if err := database.DB.Where("id = ? AND professor_id = ?", id, owner).First(&s).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"message": "Student not found."})
		}
		return internalErr(err, "Failed to fetch student.")
	}
	return c.JSON(http.StatusOK, s)
}
