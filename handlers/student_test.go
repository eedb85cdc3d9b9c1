package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grammar_master_backend/models"
)

func newStudentRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewStudentHandler(db)
	r.GET("/students", h.GetStudents)
	r.POST("/students", h.CreateStudent)
	r.PUT("/students/:id", h.UpdateStudent)
	return r, mock
}

func TestGetStudentsJoinsClassName(t *testing.T) {
	r, mock := newStudentRouter(t)

	created := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT s.id, s.firstname, s.lastname, s.fathername, s.mothername, s.phone, s.class_id, c.name AS class_name, s.created_at FROM students s LEFT JOIN classes c ON c.id = s.class_id ORDER BY s.id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "firstname", "lastname", "fathername", "mothername", "phone", "class_id", "class_name", "created_at"}).
			AddRow(1, "Ana", "Kask", "Mart", "Tiiu", "+37255512345", 3, "Beginners", created).
			AddRow(2, "Jaan", "Tamm", nil, nil, nil, nil, nil, created))

	rec := perform(r, http.MethodGet, "/students", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Students []models.Student `json:"students"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Students, 2)
	require.NotNil(t, resp.Students[0].ClassName)
	assert.Equal(t, "Beginners", *resp.Students[0].ClassName)
	assert.Nil(t, resp.Students[1].ClassID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStudent(t *testing.T) {
	r, mock := newStudentRouter(t)

	created := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO students (firstname, lastname, fathername, mothername, phone, class_id, created_at) VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, firstname, lastname, fathername, mothername, phone, class_id, created_at")).
		WithArgs("Ana", "Kask", "Mart", "Tiiu", "+37255512345", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "firstname", "lastname", "fathername", "mothername", "phone", "class_id", "created_at"}).
			AddRow(1, "Ana", "Kask", "Mart", "Tiiu", "+37255512345", 3, created))

	body := []byte(`{"firstname":"Ana","lastname":"Kask","fathername":"Mart","mothername":"Tiiu","phone":"+37255512345","class_id":3}`)
	rec := perform(r, http.MethodPost, "/students", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Student created successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStudentValidation(t *testing.T) {
	r, mock := newStudentRouter(t)

	rec := perform(r, http.MethodPost, "/students", []byte(`{"firstname":"Ana"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStudentNotFound(t *testing.T) {
	r, mock := newStudentRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE students SET firstname = $1, lastname = $2, fathername = $3, mothername = $4, phone = $5, class_id = $6 WHERE id = $7 RETURNING id, firstname, lastname, fathername, mothername, phone, class_id, created_at")).
		WithArgs("Ana", "Kask", "", "", "", nil, 99).
		WillReturnError(sql.ErrNoRows)

	body := []byte(`{"firstname":"Ana","lastname":"Kask"}`)
	rec := perform(r, http.MethodPut, "/students/99", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
