package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"grammar_master_backend/models"

	"github.com/gin-gonic/gin"
)

type ClassHandler struct {
	db *sql.DB
}

func NewClassHandler(db *sql.DB) *ClassHandler {
	return &ClassHandler{db: db}
}

func (h *ClassHandler) GetClasses(c *gin.Context) {
	rows, err := h.db.Query("SELECT id, name, description, level, created_at FROM classes WHERE is_deleted = FALSE ORDER BY id ASC")
	if err != nil {
		log.Printf("Error fetching classes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer rows.Close()

	classes := []models.Class{}
	for rows.Next() {
		var class models.Class
		var description, level sql.NullString
		if err := rows.Scan(&class.ID, &class.Name, &description, &level, &class.CreatedAt); err != nil {
			log.Printf("Error scanning class: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		class.Description = description.String
		class.Level = level.String
		classes = append(classes, class)
	}

	c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var class models.Class
	err := h.db.QueryRow(
		"INSERT INTO classes (name, description, level, created_at) VALUES ($1, $2, $3, NOW()) RETURNING id, name, description, level, created_at",
		req.Name, req.Description, req.Level,
	).Scan(&class.ID, &class.Name, &class.Description, &class.Level, &class.CreatedAt)
	if err != nil {
		log.Printf("Error creating class: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Class created successfully", "class": class})
}

func (h *ClassHandler) DeleteClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid class id"})
		return
	}

	result, err := h.db.Exec("UPDATE classes SET is_deleted = TRUE WHERE id = $1 AND is_deleted = FALSE", classID)
	if err != nil {
		log.Printf("Error deleting class %d: %v", classID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error verifying class delete: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Class not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Class deleted successfully"})
}
