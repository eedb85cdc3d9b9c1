package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"grammar_master_backend/models"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	db *sql.DB
}

func NewStudentHandler(db *sql.DB) *StudentHandler {
	return &StudentHandler{db: db}
}

func (h *StudentHandler) GetStudents(c *gin.Context) {
	rows, err := h.db.Query(`SELECT s.id, s.firstname, s.lastname, s.fathername, s.mothername, s.phone, s.class_id, c.name AS class_name, s.created_at FROM students s LEFT JOIN classes c ON c.id = s.class_id ORDER BY s.id ASC`)
	if err != nil {
		log.Printf("Error fetching students: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			log.Printf("Error scanning student: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		students = append(students, student)
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req models.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var student models.Student
	var classID sql.NullInt64
	err := h.db.QueryRow(
		"INSERT INTO students (firstname, lastname, fathername, mothername, phone, class_id, created_at) VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, firstname, lastname, fathername, mothername, phone, class_id, created_at",
		req.FirstName, req.LastName, req.FatherName, req.MotherName, req.Phone, req.ClassID,
	).Scan(&student.ID, &student.FirstName, &student.LastName, &student.FatherName, &student.MotherName, &student.Phone, &classID, &student.CreatedAt)
	if err != nil {
		log.Printf("Error creating student: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	student.ClassID = nullableID(classID)

	c.JSON(http.StatusCreated, gin.H{"message": "Student created successfully", "student": student})
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid student id"})
		return
	}

	var req models.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var student models.Student
	var classID sql.NullInt64
	err = h.db.QueryRow(
		"UPDATE students SET firstname = $1, lastname = $2, fathername = $3, mothername = $4, phone = $5, class_id = $6 WHERE id = $7 RETURNING id, firstname, lastname, fathername, mothername, phone, class_id, created_at",
		req.FirstName, req.LastName, req.FatherName, req.MotherName, req.Phone, req.ClassID, studentID,
	).Scan(&student.ID, &student.FirstName, &student.LastName, &student.FatherName, &student.MotherName, &student.Phone, &classID, &student.CreatedAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Student not found"})
		return
	} else if err != nil {
		log.Printf("Error updating student %d: %v", studentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	student.ClassID = nullableID(classID)

	c.JSON(http.StatusOK, gin.H{"message": "Student updated successfully", "student": student})
}

func scanStudent(rows *sql.Rows) (models.Student, error) {
	var student models.Student
	var father, mother, phone, className sql.NullString
	var classID sql.NullInt64
	err := rows.Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&father,
		&mother,
		&phone,
		&classID,
		&className,
		&student.CreatedAt,
	)
	if err != nil {
		return student, err
	}
	student.FatherName = father.String
	student.MotherName = mother.String
	student.Phone = phone.String
	student.ClassID = nullableID(classID)
	if className.Valid {
		student.ClassName = &className.String
	}
	return student, nil
}
