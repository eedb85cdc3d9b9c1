package db

import (
	"database/sql"
	"fmt"
)

// SeedData populates the database with a demo class and one sample lesson
func SeedData(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM lessons").Scan(&count); err != nil {
		return fmt.Errorf("error checking existing lessons: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var classID int
	err = tx.QueryRow(
		"INSERT INTO classes (name, description, level, created_at) VALUES ($1, $2, $3, NOW()) RETURNING id",
		"Beginners", "Introductory grammar group", "A1",
	).Scan(&classID)
	if err != nil {
		return fmt.Errorf("error seeding class: %w", err)
	}

	var lessonID int
	err = tx.QueryRow(
		"INSERT INTO lessons (title, class_id) VALUES ($1, $2) RETURNING id",
		"Present Simple", classID,
	).Scan(&lessonID)
	if err != nil {
		return fmt.Errorf("error seeding lesson: %w", err)
	}

	questions := []struct {
		text    string
		correct string
		options []string
	}{
		{
			text:    "She ___ to school every day.",
			correct: "goes",
			options: []string{"go", "goes", "going", "gone"},
		},
		{
			text:    "They ___ football on Sundays.",
			correct: "play",
			options: []string{"plays", "play", "playing", "played"},
		},
	}

	for _, q := range questions {
		var questionID int
		err = tx.QueryRow(
			"INSERT INTO questions (lesson_id, text, correct_answer, image_url) VALUES ($1, $2, $3, $4) RETURNING id",
			lessonID, q.text, q.correct, nil,
		).Scan(&questionID)
		if err != nil {
			return fmt.Errorf("error seeding question: %w", err)
		}
		for _, opt := range q.options {
			if _, err = tx.Exec(
				"INSERT INTO options (question_id, option_text) VALUES ($1, $2)",
				questionID, opt,
			); err != nil {
				return fmt.Errorf("error seeding option: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
