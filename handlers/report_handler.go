package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/buckneer/CheckMateV2/database"
	"github.com/buckneer/CheckMateV2/models"
)

type ReportHandler struct{}

func NewReportHandler() *ReportHandler { return &ReportHandler{} }

// subjectIDQuery reads the subject_id query param, telling a missing
// value apart from a malformed one.
func subjectIDQuery(c echo.Context) (uint, error) {
	raw := strings.TrimSpace(c.QueryParam("subject_id"))
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Subject ID is required."})
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Invalid subject ID."})
	}
	return uint(n), nil
}

// subjectMatrix is the raw material for the subject-wide reports: every
// enrolled student crossed with every session, presence defaulting to
// false when no mark exists.
type subjectMatrix struct {
	subject  models.Subject
	sessions []models.ClassSession
	students []models.Student
	present  map[uint]map[uint]bool // student id -> session id -> present
}

func loadSubjectMatrix(db *gorm.DB, subjectID, owner uint) (*subjectMatrix, error) {
	var subject models.Subject
	if err := db.Where("id = ? AND professor_id = ?", subjectID, owner).First(&subject).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusForbidden, map[string]any{"message": "Access denied or subject not found."})
		}
		return nil, err
	}

	m := &subjectMatrix{subject: subject, present: map[uint]map[uint]bool{}}
	if err := db.Where("subject_id = ?", subject.ID).Order("id ASC").Find(&m.sessions).Error; err != nil {
		return nil, err
	}
	var err error
	if m.students, err = enrolledStudents(db, subject.ID); err != nil {
		return nil, err
	}

	for _, s := range m.students {
		row := make(map[uint]bool, len(m.sessions))
		for _, cs := range m.sessions {
			row[cs.ID] = false
		}
		m.present[s.ID] = row
	}
	sessionIDs := make([]uint, 0, len(m.sessions))
	for _, cs := range m.sessions {
		sessionIDs = append(sessionIDs, cs.ID)
	}
	if len(sessionIDs) > 0 {
		var marks []models.Attendance
		if err := db.Where("class_session_id IN ?", sessionIDs).Find(&marks).Error; err != nil {
			return nil, err
		}
		for _, mk := range marks {
			if row, ok := m.present[mk.StudentID]; ok {
				row[mk.ClassSessionID] = mk.Status == models.StatusPresent
			}
		}
	}
	return m, nil
}

// GET /attendance/report/subject?subject_id=
func (h *ReportHandler) SubjectReport(c echo.Context) error {
	owner := professorID(c)
	subjectID, err := subjectIDQuery(c)
	if err != nil {
		return err
	}

	m, err := loadSubjectMatrix(database.DB, subjectID, owner)
	if err != nil {
		return internalErr(err, "Failed to build report.")
	}

	report := map[string]any{}
	for _, s := range m.students {
		classes := map[string]bool{}
		for _, cs := range m.sessions {
			classes[fmt.Sprintf("%d", cs.ID)] = m.present[s.ID][cs.ID]
		}
		report[fmt.Sprintf("%d", s.ID)] = map[string]any{
			"name":    s.FirstName + " " + s.LastName,
			"classes": classes,
		}
	}
	return c.JSON(http.StatusOK, report)
}

// GET /classes/:id/report
func (h *ReportHandler) SessionReport(c echo.Context) error {
	owner := professorID(c)
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	cs, err := ownedSession(database.DB, id, owner)
	if err != nil {
		return internalErr(err, "Failed to fetch class.")
	}
	students, err := enrolledStudents(database.DB, cs.SubjectID)
	if err != nil {
		return internalErr(err, "Failed to fetch students.")
	}
	marks, err := sessionMarks(database.DB, cs.ID)
	if err != nil {
		return internalErr(err, "Failed to fetch attendance.")
	}

	present := make([]studentOut, 0)
	absent := make([]studentOut, 0)
	for _, s := range students {
		out := studentOut{ID: s.ID, FirstName: s.FirstName, LastName: s.LastName, Email: s.Email}
		if marks[s.ID] == models.StatusPresent {
			present = append(present, out)
		} else {
			absent = append(absent, out)
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"class":   map[string]any{"id": cs.ID, "subject_id": cs.SubjectID, "date": cs.Date},
		"present": present,
		"absent":  absent,
	})
}

// GET /attendance/report/subject/export?subject_id=
//
/// Same matrix as SubjectReport, rendered as a spreadsheet: one row per
// student, one column per class session.
func (h *ReportHandler) ExportSubjectReport(c echo.Context) error {
	owner := professorID(c)
	subjectID, err := subjectIDQuery(c)
	if err != nil {
		return err
	}

	m, err := loadSubjectMatrix(database.DB, subjectID, owner)
	if err != nil {
		return internalErr(err, "Failed to build report.")
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	setCell := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	if err := setCell(1, 1, "Student"); err != nil {
		return internalErr(err, "Failed to export report.")
	}
	if err := setCell(2, 1, "Email"); err != nil {
		return internalErr(err, "Failed to export report.")
	}
	for i, cs := range m.sessions {
		if err := setCell(3+i, 1, fmt.Sprintf("%s (#%d)", cs.Date, cs.ID)); err != nil {
			return internalErr(err, "Failed to export report.")
		}
	}
	for r, s := range m.students {
		if err := setCell(1, r+2, s.FirstName+" "+s.LastName); err != nil {
			return internalErr(err, "Failed to export report.")
		}
		if err := setCell(2, r+2, s.Email); err != nil {
			return internalErr(err, "Failed to export report.")
		}
		for i, cs := range m.sessions {
			status := models.StatusAbsent
			if m.present[s.ID][cs.ID] {
				status = models.StatusPresent
			}
			if err := setCell(3+i, r+2, status); err != nil {
				return internalErr(err, "Failed to export report.")
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return internalErr(err, "Failed to export report.")
	}
	filename := fmt.Sprintf("attendance_%s.xlsx", m.subject.Name)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
