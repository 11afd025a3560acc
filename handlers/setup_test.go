package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/buckneer/CheckMateV2/config"
	"github.com/buckneer/CheckMateV2/database"
	"github.com/buckneer/CheckMateV2/handlers"
	"github.com/buckneer/CheckMateV2/routes"
)

// setup wires the full app against a fresh in-memory database. Strict
// ownership is on by default; setupMode flips it for legacy-parity tests.
func setup(t *testing.T) *echo.Echo {
	return setupMode(t, true)
}

func setupMode(t *testing.T, strict bool) *echo.Echo {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		StrictOwnership: strict,
	}
	e := echo.New()
	e.Validator = handlers.NewValidator()
	routes.Register(e, cfg)
	return e
}

func doReq(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), "body: %s", rec.Body.String())
}

// ===== common response shapes =====

type msgResp struct {
	Message string `json:"message"`
}

type idName struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type studentJSON struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Status    string `json:"status,omitempty"`
}

type classJSON struct {
	ID          uint   `json:"id"`
	SubjectID   uint   `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	ProfessorID uint   `json:"professor_id"`
	Date        string `json:"date"`
}

// ===== flow helpers =====

func signup(t *testing.T, e *echo.Echo, name, email string) string {
	t.Helper()

	rec := doReq(t, e, http.MethodPost, "/register", "", echo.Map{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doReq(t, e, http.MethodPost, "/login", "", echo.Map{
		"email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createSubject(t *testing.T, e *echo.Echo, token, name string) uint {
	t.Helper()
	rec := doReq(t, e, http.MethodPost, "/subjects", token, echo.Map{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Subject idName `json:"subject"`
	}
	decode(t, rec, &resp)
	return resp.Subject.ID
}

func addStudent(t *testing.T, e *echo.Echo, token, first, last, email string) uint {
	t.Helper()
	rec := doReq(t, e, http.MethodPost, "/students", token, echo.Map{
		"first_name": first, "last_name": last, "email": email,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Student studentJSON `json:"student"`
	}
	decode(t, rec, &resp)
	return resp.Student.ID
}

func assign(t *testing.T, e *echo.Echo, token string, studentID, subjectID uint) {
	t.Helper()
	rec := doReq(t, e, http.MethodPost, "/assign_student", token, echo.Map{
		"student_id": studentID, "subject_id": subjectID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func createClass(t *testing.T, e *echo.Echo, token string, subjectID uint) uint {
	t.Helper()
	rec := doReq(t, e, http.MethodPost, "/classes", token, echo.Map{"subject_id": subjectID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Class classJSON `json:"class"`
	}
	decode(t, rec, &resp)
	return resp.Class.ID
}
