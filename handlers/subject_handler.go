package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/buckneer/CheckMateV2/database"
	"github.com/buckneer/CheckMateV2/models"
)

type SubjectHandler struct{}

func NewSubjectHandler() *SubjectHandler { return &SubjectHandler{} }

type subjectOut struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// GET /subjects
func (h *SubjectHandler) List(c echo.Context) error {
	owner := professorID(c)

	var subjects []models.Subject
	if err := database.DB.Where("professor_id = ?", owner).Order("id ASC").Find(&subjects).Error; err != nil {
		return internalErr(err, "Failed to fetch subjects.")
	}

	out := make([]subjectOut, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, subjectOut{ID: s.ID, Name: s.Name})
	}
	msg := "Subjects fetched successfully!"
	if len(out) == 0 {
		msg = "No subjects found."
	}
	return c.JSON(http.StatusOK, map[string]any{"message": msg, "subjects": out})
}

// POST /subjects
func (h *SubjectHandler) Create(c echo.Context) error {
	owner := professorID(c)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Invalid payload."})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Subject name is required."})
	}

	var rec models.Subject
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&models.Subject{}).
			Where("name = ? AND professor_id = ?", name, owner).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			// names are only scoped per owner; another professor may reuse it
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Subject already exists."})
		}
		rec = models.Subject{Name: name, ProfessorID: owner}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return storeErr(err, "Subject already exists.", "Failed to create subject.")
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Subject created successfully!",
		"subject": subjectOut{ID: rec.ID, Name: rec.Name},
	})
}

// GET /subjects/:id
func (h *SubjectHandler) Get(c echo.Context) error {
	owner := professorID(c)
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var s models.Subject
	if err := database.DB.Where("id = ? AND professor_id = ?", id, owner).First(&s).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"message": "Subject not found."})
		}
		return internalErr(err, "Failed to fetch subject.")
	}
	return c.JSON(http.StatusOK, s)
}
