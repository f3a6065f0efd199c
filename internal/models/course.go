package models

import "time"

// Course is a source record describing a single course offering.
// Courses are read by the corpus indexer and serialized into one
// indexable text blob per course.
type Course struct {
	ID           string    `json:"id" toml:"id" validate:"required"`
	Title        string    `json:"title" toml:"title" validate:"required"`
	Duration     string    `json:"duration" toml:"duration"` // e.g. "12h 30m"
	Participants int       `json:"participants" toml:"participants" validate:"gte=0"`
	Rating       float64   `json:"rating" toml:"rating" validate:"gte=0,lte=5"`
	Discount     *float64  `json:"discount,omitempty" toml:"discount"` // percentage, nil when not available
	Price        *float64  `json:"price,omitempty" toml:"price"`       // nil when not available
	CreatedAt    time.Time `json:"created_at" toml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" toml:"updated_at"`
}

// Lesson is a source record for a single lesson belonging to a course.
type Lesson struct {
	ID        string    `json:"id" toml:"id" validate:"required"`
	CourseID  string    `json:"course_id" toml:"course_id" validate:"required"`
	Title     string    `json:"title" toml:"title" validate:"required"`
	Content   string    `json:"content" toml:"content"`
	CreatedAt time.Time `json:"created_at" toml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" toml:"updated_at"`
}

// LessonDetail is a source record for supplementary material attached to a lesson.
type LessonDetail struct {
	ID         string    `json:"id" toml:"id" validate:"required"`
	LessonID   string    `json:"lesson_id" toml:"lesson_id" validate:"required"`
	Name       string    `json:"name" toml:"name" validate:"required"`
	VideoTitle string    `json:"video_title" toml:"video_title"`
	Tasks      []string  `json:"tasks" toml:"tasks"`
	CreatedAt  time.Time `json:"created_at" toml:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" toml:"updated_at"`
}
