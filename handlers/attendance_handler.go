package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/buckneer/CheckMateV2/database"
	"github.com/buckneer/CheckMateV2/models"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

// POST /classes/:id/attendance
//
// Marks are write-once: a second mark for the same (class, student) pair
// is rejected and the stored status stays whatever the first call set.
func (h *AttendanceHandler) Mark(c echo.Context) error {
	owner := professorID(c)
	classID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		StudentID uint   `json:"student_id"`
		Status    string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Invalid payload."})
	}
	if req.StudentID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Student ID is required."})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = models.StatusPresent
	}
	if status != models.StatusPresent && status != models.StatusAbsent {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Status must be 'present' or 'absent'."})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		cs, err := ownedSession(tx, classID, owner)
		if err != nil {
			return err
		}

		var enrolled int64
		if err := tx.Model(&models.Enrollment{}).
			Where("student_id = ? AND subject_id = ?", req.StudentID, cs.SubjectID).
			Count(&enrolled).Error; err != nil {
			return err
		}
		if enrolled == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Student is not assigned to this subject."})
		}

		var cnt int64
		if err := tx.Model(&models.Attendance{}).
			Where("class_session_id = ? AND student_id = ?", cs.ID, req.StudentID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Attendance already marked for this student in this class."})
		}

		return tx.Create(&models.Attendance{
			ClassSessionID: cs.ID,
			StudentID:      req.StudentID,
			Status:         status,
		}).Error
	})
	if err != nil {
		return storeErr(err, "Attendance already marked for this student in this class.", "Failed to mark attendance.")
	}

	return c.JSON(http.StatusCreated, map[string]any{"message": "Attendance marked successfully!"})
}
