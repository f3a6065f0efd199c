package badger

import (
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
)

func TestCourseStorage_SaveAndList(t *testing.T) {
	db := openTestDB(t)
	storage := NewCourseStorage(db, arbor.NewLogger())

	course := &models.Course{ID: "course-1", Title: "Go Fundamentals", Duration: "8h", Rating: 4.5}
	if err := storage.Save(course); err != nil {
		t.Fatalf("Failed to save course: %v", err)
	}
	if course.CreatedAt.IsZero() || course.UpdatedAt.IsZero() {
		t.Error("Save must set timestamps")
	}

	// Saving again is an upsert, not a duplicate
	course.Title = "Go Fundamentals (updated)"
	if err := storage.Save(course); err != nil {
		t.Fatalf("Failed to re-save course: %v", err)
	}

	courses, err := storage.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("Expected 1 course, got %d", len(courses))
	}
	if courses[0].Title != "Go Fundamentals (updated)" {
		t.Errorf("Upsert did not replace record, title: %s", courses[0].Title)
	}

	if err := storage.Save(&models.Course{Title: "no id"}); err == nil {
		t.Error("Expected error for missing course ID")
	}
}

func TestLessonStorage_ListByCourse(t *testing.T) {
	db := openTestDB(t)
	storage := NewLessonStorage(db, arbor.NewLogger())

	for _, lesson := range []*models.Lesson{
		{ID: "lesson-b", CourseID: "course-1", Title: "Second"},
		{ID: "lesson-a", CourseID: "course-1", Title: "First"},
		{ID: "lesson-c", CourseID: "course-2", Title: "Other course"},
	} {
		if err := storage.Save(lesson); err != nil {
			t.Fatalf("Failed to save lesson %s: %v", lesson.ID, err)
		}
	}

	lessons, err := storage.ListByCourse("course-1")
	if err != nil {
		t.Fatalf("ListByCourse failed: %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("Expected 2 lessons for course-1, got %d", len(lessons))
	}
	// Sorted by ID for stable ordering
	if lessons[0].ID != "lesson-a" || lessons[1].ID != "lesson-b" {
		t.Errorf("Unexpected order: %s, %s", lessons[0].ID, lessons[1].ID)
	}

	all, err := storage.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 lessons total, got %d", len(all))
	}
}

func TestLessonDetailStorage_ListByLesson(t *testing.T) {
	db := openTestDB(t)
	storage := NewLessonDetailStorage(db, arbor.NewLogger())

	for _, detail := range []*models.LessonDetail{
		{ID: "detail-1", LessonID: "lesson-a", Name: "Cheatsheet", Tasks: []string{"read"}},
		{ID: "detail-2", LessonID: "lesson-a", Name: "Exercises"},
		{ID: "detail-3", LessonID: "lesson-b", Name: "Video notes"},
	} {
		if err := storage.Save(detail); err != nil {
			t.Fatalf("Failed to save detail %s: %v", detail.ID, err)
		}
	}

	details, err := storage.ListByLesson("lesson-a")
	if err != nil {
		t.Fatalf("ListByLesson failed: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("Expected 2 details for lesson-a, got %d", len(details))
	}
	if details[0].Tasks[0] != "read" {
		t.Errorf("Tasks not persisted, got %v", details[0].Tasks)
	}
}
