package audit

import (
	"database/sql"
	"log"
)

// Logger appends event records to the logs table after privileged
// mutations. Recording is best effort and never fails the request.
type Logger struct {
	db *sql.DB
}

func NewLogger(db *sql.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Record(eventType, comment string, userID int) {
	if l == nil {
		return
	}
	// user_id 0 means no authenticated actor, stored as NULL
	var actor interface{}
	if userID > 0 {
		actor = userID
	}
	_, err := l.db.Exec(
		"INSERT INTO logs (event_type, comment, user_id, created_at) VALUES ($1, $2, $3, NOW())",
		eventType, comment, actor,
	)
	if err != nil {
		log.Printf("audit: recording %q: %v", eventType, err)
	}
}
