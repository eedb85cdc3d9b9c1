package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"grammar_master_backend/audit"
	"grammar_master_backend/cache"
	"grammar_master_backend/models"

	"github.com/gin-gonic/gin"
)

const lessonsCacheKey = "lessons"

type LessonHandler struct {
	db       *sql.DB
	cache    cache.Store
	cacheTTL time.Duration
	audit    *audit.Logger
}

func NewLessonHandler(db *sql.DB, store cache.Store, cacheTTL time.Duration, auditLog *audit.Logger) *LessonHandler {
	if cacheTTL <= 0 {
		cacheTTL = 600 * time.Second
	}
	return &LessonHandler{db: db, cache: store, cacheTTL: cacheTTL, audit: auditLog}
}

// GetLessons returns the full lesson tree, serving from cache when a
// fresh copy is available.
func (h *LessonHandler) GetLessons(c *gin.Context) {
	classID := classScope(c)
	key := lessonCacheKey(classID)

	if body, ok := h.cacheGet(key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	resp, err := h.listLessons(classID)
	if err != nil {
		log.Printf("Error fetching lessons: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": "failed to fetch lessons"})
		return
	}

	body, err := json.Marshal(resp)
	if err != nil {
		log.Printf("Error encoding lessons: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": "failed to encode lessons"})
		return
	}

	h.cacheSet(key, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// CreateLesson inserts a lesson with all of its questions and options
// in one transaction.
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	userID := c.GetInt("userID")

	var req models.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		log.Printf("Error starting transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer tx.Rollback()

	var lessonID int
	err = tx.QueryRow(
		"INSERT INTO lessons (title, class_id) VALUES ($1, $2) RETURNING id",
		req.Title, req.ClassID,
	).Scan(&lessonID)
	if err != nil {
		log.Printf("Error saving lesson: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	for _, q := range req.Questions {
		var questionID int
		err = tx.QueryRow(
			"INSERT INTO questions (lesson_id, text, correct_answer, image_url) VALUES ($1, $2, $3, $4) RETURNING id",
			lessonID, q.Text, q.CorrectAnswer, q.Image,
		).Scan(&questionID)
		if err != nil {
			log.Printf("Error saving question: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		for _, optionText := range q.Options {
			if _, err = tx.Exec(
				"INSERT INTO options (question_id, option_text) VALUES ($1, $2)",
				questionID, optionText,
			); err != nil {
				log.Printf("Error saving option: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
				return
			}
		}
	}

	if err = tx.Commit(); err != nil {
		log.Printf("Error committing lesson: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.evictLessons(req.ClassID)
	h.audit.Record("lesson_created", fmt.Sprintf("lesson %d created", lessonID), userID)

	c.JSON(http.StatusCreated, gin.H{"message": "Lesson saved successfully!", "lessonId": lessonID})
}

// UpdateLesson reconciles the submitted snapshot against the stored
// questions: known ids are updated in place (options replaced), new
// entries inserted, and stored questions missing from the snapshot
// deleted. The whole sequence runs in one transaction.
func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	userID := c.GetInt("userID")

	lessonID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid lesson id"})
		return
	}

	var req models.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		log.Printf("Error starting transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer tx.Rollback()

	var classID sql.NullInt64
	err = tx.QueryRow("SELECT class_id FROM lessons WHERE id = $1", lessonID).Scan(&classID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Lesson not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching lesson %d: %v", lessonID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if _, err = tx.Exec("UPDATE lessons SET title = $1 WHERE id = $2", req.Title, lessonID); err != nil {
		log.Printf("Error updating lesson %d: %v", lessonID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	existing, err := existingQuestionIDs(tx, lessonID)
	if err != nil {
		log.Printf("Error fetching questions for lesson %d: %v", lessonID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	existingSet := make(map[int]bool, len(existing))
	for _, id := range existing {
		existingSet[id] = true
	}

	updated := make(map[int]bool, len(req.Questions))
	for _, q := range req.Questions {
		if q.ID != nil && existingSet[*q.ID] {
			if err = updateQuestion(tx, *q.ID, q); err != nil {
				log.Printf("Error updating question %d: %v", *q.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
				return
			}
			updated[*q.ID] = true
			continue
		}

		if err = insertQuestion(tx, lessonID, q); err != nil {
			log.Printf("Error inserting question: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
	}

	// questions omitted from the snapshot are deleted, options cascade
	for _, id := range existing {
		if updated[id] {
			continue
		}
		if _, err = tx.Exec("DELETE FROM questions WHERE id = $1", id); err != nil {
			log.Printf("Error deleting question %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
	}

	if err = tx.Commit(); err != nil {
		log.Printf("Error committing lesson update: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.evictLessons(nullableID(classID))
	h.audit.Record("lesson_updated", fmt.Sprintf("lesson %d updated", lessonID), userID)

	c.JSON(http.StatusOK, gin.H{"message": "Lesson updated successfully"})
}

// DeleteLesson removes a lesson; questions and options cascade.
func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	userID := c.GetInt("userID")

	lessonID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid lesson id"})
		return
	}

	var lesson models.LessonRow
	var classID sql.NullInt64
	err = h.db.QueryRow(
		"DELETE FROM lessons WHERE id = $1 RETURNING id, title, class_id",
		lessonID,
	).Scan(&lesson.ID, &lesson.Title, &classID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Lesson not found"})
		return
	} else if err != nil {
		log.Printf("Error deleting lesson %d: %v", lessonID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	lesson.ClassID = nullableID(classID)

	h.evictLessons(lesson.ClassID)
	h.audit.Record("lesson_deleted", fmt.Sprintf("lesson %d deleted", lesson.ID), userID)

	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted successfully", "lesson": lesson})
}

// listLessons assembles the nested lesson tree. Each level is fetched
// ordered by ascending id so the structure is deterministic.
func (h *LessonHandler) listLessons(classID *int) (models.LessonsResponse, error) {
	resp := models.LessonsResponse{Lessons: []models.Lesson{}}

	var rows *sql.Rows
	var err error
	if classID != nil {
		rows, err = h.db.Query("SELECT id, title, class_id FROM lessons WHERE class_id = $1 ORDER BY id", *classID)
	} else {
		rows, err = h.db.Query("SELECT id, title, class_id FROM lessons ORDER BY id")
	}
	if err != nil {
		return resp, err
	}
	defer rows.Close()

	for rows.Next() {
		var lesson models.Lesson
		var lessonClass sql.NullInt64
		if err := rows.Scan(&lesson.ID, &lesson.Title, &lessonClass); err != nil {
			return resp, err
		}
		lesson.ClassID = nullableID(lessonClass)
		resp.Lessons = append(resp.Lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return resp, err
	}
	rows.Close()

	for i := range resp.Lessons {
		questions, err := h.fetchQuestions(resp.Lessons[i].ID)
		if err != nil {
			return resp, err
		}
		resp.Lessons[i].Questions = questions
	}

	return resp, nil
}

func (h *LessonHandler) fetchQuestions(lessonID int) ([]models.Question, error) {
	rows, err := h.db.Query("SELECT id, text, correct_answer, image_url FROM questions WHERE lesson_id = $1 ORDER BY id", lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		var image sql.NullString
		if err := rows.Scan(&q.ID, &q.Text, &q.CorrectAnswer, &image); err != nil {
			return nil, err
		}
		if image.Valid {
			q.Image = &image.String
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range questions {
		options, err := h.fetchOptions(questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Options = options
	}

	return questions, nil
}

func (h *LessonHandler) fetchOptions(questionID int) ([]string, error) {
	rows, err := h.db.Query("SELECT option_text FROM options WHERE question_id = $1 ORDER BY id", questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := []string{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		options = append(options, text)
	}
	return options, rows.Err()
}

func existingQuestionIDs(tx *sql.Tx, lessonID int) ([]int, error) {
	rows, err := tx.Query("SELECT id FROM questions WHERE lesson_id = $1 ORDER BY id", lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func updateQuestion(tx *sql.Tx, questionID int, q models.QuestionInput) error {
	if _, err := tx.Exec(
		"UPDATE questions SET text = $1, correct_answer = $2, image_url = $3 WHERE id = $4",
		q.Text, q.CorrectAnswer, q.Image, questionID,
	); err != nil {
		return err
	}
	// replace options wholesale; per-option diffing is not worth it
	if _, err := tx.Exec("DELETE FROM options WHERE question_id = $1", questionID); err != nil {
		return err
	}
	return insertOptions(tx, questionID, q.Options)
}

func insertQuestion(tx *sql.Tx, lessonID int, q models.QuestionInput) error {
	var questionID int
	err := tx.QueryRow(
		"INSERT INTO questions (lesson_id, text, correct_answer, image_url) VALUES ($1, $2, $3, $4) RETURNING id",
		lessonID, q.Text, q.CorrectAnswer, q.Image,
	).Scan(&questionID)
	if err != nil {
		return err
	}
	return insertOptions(tx, questionID, q.Options)
}

func insertOptions(tx *sql.Tx, questionID int, options []string) error {
	for _, optionText := range options {
		if _, err := tx.Exec(
			"INSERT INTO options (question_id, option_text) VALUES ($1, $2)",
			questionID, optionText,
		); err != nil {
			return err
		}
	}
	return nil
}

func (h *LessonHandler) cacheGet(key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	return h.cache.Get(key)
}

func (h *LessonHandler) cacheSet(key string, body []byte) {
	if h.cache == nil {
		return
	}
	h.cache.Set(key, body, h.cacheTTL)
}

// evictLessons drops the global collection entry plus the class-scoped
// entry when the mutated lesson belongs to a class.
func (h *LessonHandler) evictLessons(classID *int) {
	if h.cache == nil {
		return
	}
	h.cache.Delete(lessonsCacheKey)
	if classID != nil {
		h.cache.Delete(lessonCacheKey(classID))
	}
}

func lessonCacheKey(classID *int) string {
	if classID == nil {
		return lessonsCacheKey
	}
	return fmt.Sprintf("%s:class:%d", lessonsCacheKey, *classID)
}

// classScope resolves the class filter for lesson reads: the classId
// claim from the token wins, a classId query param is the fallback.
func classScope(c *gin.Context) *int {
	if v, ok := c.Get("classID"); ok {
		if id, ok := v.(int); ok {
			return &id
		}
	}
	if q := c.Query("classId"); q != "" {
		if id, err := strconv.Atoi(q); err == nil {
			return &id
		}
	}
	return nil
}

func nullableID(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	id := int(v.Int64)
	return &id
}
