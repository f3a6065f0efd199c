package badger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
)

type testStorageManager struct {
	db *BadgerDB
}

func (m *testStorageManager) DocumentStorage() interfaces.DocumentStorage {
	return NewDocumentStorage(m.db, arbor.NewLogger())
}

func (m *testStorageManager) CourseStorage() interfaces.CourseStorage {
	return NewCourseStorage(m.db, arbor.NewLogger())
}

func (m *testStorageManager) LessonStorage() interfaces.LessonStorage {
	return NewLessonStorage(m.db, arbor.NewLogger())
}

func (m *testStorageManager) LessonDetailStorage() interfaces.LessonDetailStorage {
	return NewLessonDetailStorage(m.db, arbor.NewLogger())
}

func (m *testStorageManager) Close() error { return nil }

func TestLoadContentFromFiles(t *testing.T) {
	db := openTestDB(t)
	storage := &testStorageManager{db: db}

	contentDir := t.TempDir()
	content := `
[[courses]]
id = "course-1"
title = "React Native Basics"
duration = "10h"
participants = 1200
rating = 4.8

[[courses]]
title = "missing id, should be skipped"

[[lessons]]
id = "lesson-1"
course_id = "course-1"
title = "Getting Started"
content = "Install the toolchain."

[[details]]
id = "detail-1"
lesson_id = "lesson-1"
name = "Setup Checklist"
video_title = "Environment Setup"
tasks = ["install node", "install xcode"]
`
	if err := os.WriteFile(filepath.Join(contentDir, "courses.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	// Non-TOML files are ignored
	if err := os.WriteFile(filepath.Join(contentDir, "readme.md"), []byte("notes"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadContentFromFiles(storage, contentDir, arbor.NewLogger()); err != nil {
		t.Fatalf("LoadContentFromFiles failed: %v", err)
	}

	courses, err := storage.CourseStorage().ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(courses) != 1 {
		t.Fatalf("Expected 1 valid course, got %d", len(courses))
	}
	if courses[0].Title != "React Native Basics" {
		t.Errorf("Unexpected course title: %s", courses[0].Title)
	}

	lessons, err := storage.LessonStorage().ListByCourse("course-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(lessons) != 1 {
		t.Fatalf("Expected 1 lesson, got %d", len(lessons))
	}

	details, err := storage.LessonDetailStorage().ListByLesson("lesson-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(details) != 1 || len(details[0].Tasks) != 2 {
		t.Fatalf("Expected 1 detail with 2 tasks, got %+v", details)
	}
}

func TestLoadContentFromFiles_MissingDirIsNotAnError(t *testing.T) {
	db := openTestDB(t)
	storage := &testStorageManager{db: db}

	if err := LoadContentFromFiles(storage, filepath.Join(t.TempDir(), "absent"), arbor.NewLogger()); err != nil {
		t.Fatalf("Missing content directory must be tolerated: %v", err)
	}
}
