package indexer

import (
	"fmt"
	"strings"

	"github.com/ternarybob/doceo/internal/models"
)

const notAvailable = "not available"

// serializeCourse produces the canonical text blob for a course record. The
// output is deterministic for a given course and lesson set, so rebuilding an
// unchanged corpus yields identical document text.
func serializeCourse(course *models.Course, lessons []*models.Lesson) string {
	discount := notAvailable
	if course.Discount != nil {
		discount = fmt.Sprintf("%g%%", *course.Discount)
	}

	price := notAvailable
	if course.Price != nil {
		price = fmt.Sprintf("$%.2f", *course.Price)
	}

	lessonTitles := "no lessons yet"
	if len(lessons) > 0 {
		titles := make([]string, 0, len(lessons))
		for _, lesson := range lessons {
			titles = append(titles, lesson.Title)
		}
		lessonTitles = strings.Join(titles, ", ")
	}

	return fmt.Sprintf(
		"Course: %s. Lessons: %d. Duration: %s. Participants: %d. Rating: %g. Discount: %s. Price: %s. Lesson titles: %s.",
		course.Title, len(lessons), course.Duration, course.Participants, course.Rating, discount, price, lessonTitles,
	)
}

// serializeLesson produces the canonical text blob for a lesson record,
// including the names of any details attached to it.
func serializeLesson(lesson *models.Lesson, details []*models.LessonDetail) string {
	detailNames := "no details"
	if len(details) > 0 {
		names := make([]string, 0, len(details))
		for _, detail := range details {
			names = append(names, detail.Name)
		}
		detailNames = strings.Join(names, ", ")
	}

	return fmt.Sprintf(
		"Lesson: %s. Course: %s. Content: %s. Details: %s.",
		lesson.Title, lesson.CourseID, lesson.Content, detailNames,
	)
}

// serializeDetail produces the canonical text blob for a lesson-detail record.
func serializeDetail(detail *models.LessonDetail) string {
	tasks := "no tasks"
	if len(detail.Tasks) > 0 {
		tasks = strings.Join(detail.Tasks, ", ")
	}

	return fmt.Sprintf(
		"Detail: %s. Video: %s. Tasks: %s.",
		detail.Name, detail.VideoTitle, tasks,
	)
}
