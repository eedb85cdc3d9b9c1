package models

import "time"

type Student struct {
	ID         int       `json:"id"`
	FirstName  string    `json:"firstname"`
	LastName   string    `json:"lastname"`
	FatherName string    `json:"fathername"`
	MotherName string    `json:"mothername"`
	Phone      string    `json:"phone"`
	ClassID    *int      `json:"class_id"`
	ClassName  *string   `json:"class_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateStudentRequest struct {
	FirstName  string `json:"firstname" binding:"required"`
	LastName   string `json:"lastname" binding:"required"`
	FatherName string `json:"fathername"`
	MotherName string `json:"mothername"`
	Phone      string `json:"phone"`
	ClassID    *int   `json:"class_id"`
}

type UpdateStudentRequest struct {
	FirstName  string `json:"firstname" binding:"required"`
	LastName   string `json:"lastname" binding:"required"`
	FatherName string `json:"fathername"`
	MotherName string `json:"mothername"`
	Phone      string `json:"phone"`
	ClassID    *int   `json:"class_id"`
}
