package models

// Lesson is a lesson together with its ordered questions, each carrying
// its ordered option texts. Ordering follows ascending row ids.
type Lesson struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	ClassID   *int       `json:"classId,omitempty"`
	Questions []Question `json:"questions"`
}

type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"text"`
	CorrectAnswer string   `json:"correctAnswer"`
	Image         *string  `json:"image"`
	Options       []string `json:"options"`
}

type LessonsResponse struct {
	Lessons []Lesson `json:"lessons"`
}

// LessonRow is a bare lessons row, returned by delete
type LessonRow struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	ClassID *int   `json:"classId,omitempty"`
}

type QuestionInput struct {
	ID            *int     `json:"id"`
	Text          string   `json:"text" binding:"required"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
	Image         *string  `json:"image"`
	Options       []string `json:"options"`
}

type CreateLessonRequest struct {
	Title     string          `json:"title" binding:"required"`
	ClassID   *int            `json:"classId"`
	Questions []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

type UpdateLessonRequest struct {
	Title     string          `json:"title" binding:"required"`
	Questions []QuestionInput `json:"questions" binding:"required,dive"`
}
