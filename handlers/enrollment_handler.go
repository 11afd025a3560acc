package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/buckneer/CheckMateV2/database"
	"github.com/buckneer/CheckMateV2/models"
)

// EnrollmentHandler links students to subjects. With Strict set, the
// routes are authenticated and the caller must own both the student and
// the subject; without it they behave like the legacy public endpoints.
type EnrollmentHandler struct {
	Strict bool
}

func NewEnrollmentHandler(strict bool) *EnrollmentHandler {
	return &EnrollmentHandler{Strict: strict}
}

// POST /assign_student
func (h *EnrollmentHandler) Assign(c echo.Context) error {
	owner := professorID(c)

	var req struct {
		StudentID uint `json:"student_id"`
		SubjectID uint `json:"subject_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Invalid payload."})
	}
	if req.StudentID == 0 || req.SubjectID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Student ID and Subject ID are required."})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.First(&student, req.StudentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusNotFound, map[string]any{"message": "Student not found."})
			}
			return err
		}
		var subject models.Subject
		if err := tx.First(&subject, req.SubjectID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusNotFound, map[string]any{"message": "Subject not found."})
			}
			return err
		}
		if h.Strict && (student.ProfessorID != owner || subject.ProfessorID != owner) {
			return echo.NewHTTPError(http.StatusForbidden, map[string]any{"message": "Access denied."})
		}

		var cnt int64
		if err := tx.Model(&models.Enrollment{}).
			Where("student_id = ? AND subject_id = ?", req.StudentID, req.SubjectID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Student is already assigned to this subject."})
		}
		return tx.Create(&models.Enrollment{StudentID: req.StudentID, SubjectID: req.SubjectID}).Error
	})
	if err != nil {
		return storeErr(err, "Student is already assigned to this subject.", "Failed to assign student to subject.")
	}

	return c.JSON(http.StatusCreated, map[string]any{"message": "Student successfully assigned to subject."})
}

// GET /subject/:id/students
func (h *EnrollmentHandler) SubjectRoster(c echo.Context) error {
	owner := professorID(c)
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var subject models.Subject
	if err := database.DB.First(&subject, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"message": "Subject not found."})
		}
		return internalErr(err, "Failed to fetch subject.")
	}
	if h.Strict && subject.ProfessorID != owner {
		// do not reveal foreign subjects
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"message": "Subject not found."})
	}

	students, err := enrolledStudents(database.DB, subject.ID)
	if err != nil {
		return internalErr(err, "Failed to fetch students.")
	}

	out := make([]map[string]any, 0, len(students))
	for _, s := range students {
		out = append(out, map[string]any{
			"id":         s.ID,
			"first_name": s.FirstName,
			"last_name":  s.LastName,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":       subject.ID,
		"name":     subject.Name,
		"students": out,
	})
}

// enrolledStudents returns the students linked to a subject, ordered by
// enrollment id so rosters are stable.
func enrolledStudents(db *gorm.DB, subjectID uint) ([]models.Student, error) {
	var students []models.Student
	err := db.Model(&models.Student{}).
		Joins("JOIN enrollments ON enrollments.student_id = students.id").
		Where("enrollments.subject_id = ?", subjectID).
		Order("enrollments.id ASC").
		Find(&students).Error
	return students, err
}
