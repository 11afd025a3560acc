package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/buckneer/CheckMateV2/database"
	"github.com/buckneer/CheckMateV2/models"
)

type ClassHandler struct{}

func NewClassHandler() *ClassHandler { return &ClassHandler{} }

func classOut(cs models.ClassSession, subjectName string) map[string]any {
	return map[string]any{
		"id":           cs.ID,
		"subject_id":   cs.SubjectID,
		"subject_name": subjectName,
		"professor_id": cs.ProfessorID,
		"date":         cs.Date,
	}
}

// ownedSession loads a class session and enforces that it was created by
// the caller. Foreign sessions read as missing.
func ownedSession(tx *gorm.DB, id, owner uint) (models.ClassSession, error) {
	var cs models.ClassSession
	err := tx.Where("id = ? AND professor_id = ?", id, owner).First(&cs).Error
	if err == gorm.ErrRecordNotFound {
		return cs, echo.NewHTTPError(http.StatusNotFound, map[string]any{
			"message": "Class not found or does not belong to the current professor.",
		})
	}
	return cs, err
}

// POST /classes
func (h *ClassHandler) Create(c echo.Context) error {
	owner := professorID(c)

	var req struct {
		SubjectID uint `json:"subject_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Invalid payload."})
	}
	if req.SubjectID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Subject ID is required."})
	}

	var (
		rec     models.ClassSession
		subject models.Subject
	)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND professor_id = ?", req.SubjectID, owner).First(&subject).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusNotFound, map[string]any{
					"message": "Subject not found or does not belong to the current professor.",
				})
			}
			return err
		}
		rec = models.ClassSession{
			SubjectID:   subject.ID,
			ProfessorID: owner,
			Date:        time.Now().Format("2006-01-02"),
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return internalErr(err, "Failed to create class.")
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Class created successfully!",
		"class":   classOut(rec, subject.Name),
	})
}

// GET /subject/:id/classes
func (h *ClassHandler) ListForSubject(c echo.Context) error {
	owner := professorID(c)
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var subject models.Subject
	if err := database.DB.Where("id = ? AND professor_id = ?", id, owner).First(&subject).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"message": "Subject not found or access denied"})
		}
		return internalErr(err, "Failed to fetch subject.")
	}

	var sessions []models.ClassSession
	if err := database.DB.Where("subject_id = ?", subject.ID).Order("id ASC").Find(&sessions).Error; err != nil {
		return internalErr(err, "Failed to fetch classes.")
	}

	out := make([]map[string]any, 0, len(sessions))
	for _, cs := range sessions {
		out = append(out, map[string]any{"id": cs.ID, "date": cs.Date})
	}
	return c.JSON(http.StatusOK, map[string]any{"classes": out})
}

// GET /classes/:id
//
// Reports a status for every student enrolled in the session's subject.
// Students without a stored mark come back as "absent"; absence is a
// projection against the enrollment set, not a row.
func (h *ClassHandler) GetAttendance(c echo.Context) error {
	owner := professorID(c)
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	cs, err := ownedSession(database.DB, id, owner)
	if err != nil {
		return internalErr(err, "Failed to fetch class.")
	}
	var subject models.Subject
	if err := database.DB.First(&subject, cs.SubjectID).Error; err != nil {
		return internalErr(err, "Failed to fetch subject.")
	}

	students, err := enrolledStudents(database.DB, cs.SubjectID)
	if err != nil {
		return internalErr(err, "Failed to fetch students.")
	}
	marks, err := sessionMarks(database.DB, cs.ID)
	if err != nil {
		return internalErr(err, "Failed to fetch attendance.")
	}

	attendance := make([]map[string]any, 0, len(students))
	for _, s := range students {
		status := models.StatusAbsent
		if m, ok := marks[s.ID]; ok {
			status = m
		}
		attendance = append(attendance, map[string]any{
			"student_id": s.ID,
			"first_name": s.FirstName,
			"last_name":  s.LastName,
			"status":     status,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"class":      classOut(cs, subject.Name),
		"attendance": attendance,
	})
}

// sessionMarks returns the stored status per student for one session.
func sessionMarks(db *gorm.DB, sessionID uint) (map[uint]string, error) {
	var marks []models.Attendance
	if err := db.Where("class_session_id = ?", sessionID).Find(&marks).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]string, len(marks))
	for _, m := range marks {
		out[m.StudentID] = m.Status
	}
	return out, nil
}
