package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buckneer/CheckMateV2/database"
	"github.com/buckneer/CheckMateV2/models"
)

func TestCreateClass(t *testing.T) {
	e := setup(t)
	token := signup(t, e, "Alice", "alice@example.com")
	subjectID := createSubject(t, e, token, "Math")

	rec := doReq(t, e, http.MethodPost, "/classes", token, echo.Map{"subject_id": subjectID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Message string    `json:"message"`
		Class   classJSON `json:"class"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "Class created successfully!", resp.Message)
	assert.Equal(t, subjectID, resp.Class.SubjectID)
	assert.Equal(t, "Math", resp.Class.SubjectName)
	assert.Equal(t, time.Now().Format("2006-01-02"), resp.Class.Date)
}

func TestCreateClassOwnershipBoundary(t *testing.T) {
	e := setup(t)
	alice := signup(t, e, "Alice", "alice@example.com")
	bob := signup(t, e, "Bob", "bob@example.com")
	subjectID := createSubject(t, e, alice, "Math")

	rec := doReq(t, e, http.MethodPost, "/classes", bob, echo.Map{"subject_id": subjectID})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// nothing was created
	var cnt int64
	require.NoError(t, database.DB.Model(&models.ClassSession{}).Count(&cnt).Error)
	assert.EqualValues(t, 0, cnt)
}

func TestCreateClassUnknownSubject(t *testing.T) {
	e := setup(t)
	token := signup(t, e, "Alice", "alice@example.com")

	rec := doReq(t, e, http.MethodPost, "/classes", token, echo.Map{"subject_id": 42})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doReq(t, e, http.MethodPost, "/classes", token, echo.Map{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListClassesForSubject(t *testing.T) {
	e := setup(t)
	token := signup(t, e, "Alice", "alice@example.com")
	subjectID := createSubject(t, e, token, "Math")

	// two sessions on the same date are allowed
	first := createClass(t, e, token, subjectID)
	second := createClass(t, e, token, subjectID)

	rec := doReq(t, e, http.MethodGet, fmt.Sprintf("/subject/%d/classes", subjectID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Classes []struct {
			ID   uint   `json:"id"`
			Date string `json:"date"`
		} `json:"classes"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Classes, 2)
	assert.Equal(t, first, resp.Classes[0].ID)
	assert.Equal(t, second, resp.Classes[1].ID)
}

func TestListClassesForeignSubject(t *testing.T) {
	e := setup(t)
	alice := signup(t, e, "Alice", "alice@example.com")
	bob := signup(t, e, "Bob", "bob@example.com")
	subjectID := createSubject(t, e, alice, "Math")
	createClass(t, e, alice, subjectID)

	rec := doReq(t, e, http.MethodGet, fmt.Sprintf("/subject/%d/classes", subjectID), bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetClassAttendanceDefaultsToAbsent(t *testing.T) {
	e := setup(t)
	token := signup(t, e, "Alice", "alice@example.com")
	subjectID := createSubject(t, e, token, "Math")
	studentID := addStudent(t, e, token, "Jane", "Doe", "jane@x.com")
	assign(t, e, token, studentID, subjectID)
	classID := createClass(t, e, token, subjectID)

	rec := doReq(t, e, http.MethodGet, fmt.Sprintf("/classes/%d", classID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Class      classJSON `json:"class"`
		Attendance []struct {
			StudentID uint   `json:"student_id"`
			FirstName string `json:"first_name"`
			Status    string `json:"status"`
		} `json:"attendance"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, classID, resp.Class.ID)
	require.Len(t, resp.Attendance, 1)
	assert.Equal(t, studentID, resp.Attendance[0].StudentID)
	// no mark stored: the projection reports absent, never omits the student
	assert.Equal(t, "absent", resp.Attendance[0].Status)
}

func TestGetClassForeignOwner(t *testing.T) {
	e := setup(t)
	alice := signup(t, e, "Alice", "alice@example.com")
	bob := signup(t, e, "Bob", "bob@example.com")
	subjectID := createSubject(t, e, alice, "Math")
	classID := createClass(t, e, alice, subjectID)

	rec := doReq(t, e, http.MethodGet, fmt.Sprintf("/classes/%d", classID), bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
