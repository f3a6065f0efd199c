package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// CourseStorage implements the CourseStorage interface for Badger
type CourseStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCourseStorage creates a new CourseStorage instance
func NewCourseStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CourseStorage {
	return &CourseStorage{db: db, logger: logger}
}

func (s *CourseStorage) Save(course *models.Course) error {
	if course.ID == "" {
		return fmt.Errorf("course ID is required")
	}

	now := time.Now()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	if err := s.db.Store().Upsert(course.ID, course); err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}
	return nil
}

func (s *CourseStorage) ListAll() ([]*models.Course, error) {
	var courses []models.Course
	if err := s.db.Store().Find(&courses, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })

	result := make([]*models.Course, len(courses))
	for i := range courses {
		result[i] = &courses[i]
	}
	return result, nil
}

// LessonStorage implements the LessonStorage interface for Badger
type LessonStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewLessonStorage creates a new LessonStorage instance
func NewLessonStorage(db *BadgerDB, logger arbor.ILogger) interfaces.LessonStorage {
	return &LessonStorage{db: db, logger: logger}
}

func (s *LessonStorage) Save(lesson *models.Lesson) error {
	if lesson.ID == "" {
		return fmt.Errorf("lesson ID is required")
	}

	now := time.Now()
	if lesson.CreatedAt.IsZero() {
		lesson.CreatedAt = now
	}
	lesson.UpdatedAt = now

	if err := s.db.Store().Upsert(lesson.ID, lesson); err != nil {
		return fmt.Errorf("failed to save lesson: %w", err)
	}
	return nil
}

func (s *LessonStorage) ListAll() ([]*models.Lesson, error) {
	var lessons []models.Lesson
	if err := s.db.Store().Find(&lessons, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}

	sort.Slice(lessons, func(i, j int) bool { return lessons[i].ID < lessons[j].ID })

	result := make([]*models.Lesson, len(lessons))
	for i := range lessons {
		result[i] = &lessons[i]
	}
	return result, nil
}

func (s *LessonStorage) ListByCourse(courseID string) ([]*models.Lesson, error) {
	var lessons []models.Lesson
	if err := s.db.Store().Find(&lessons, badgerhold.Where("CourseID").Eq(courseID)); err != nil {
		return nil, fmt.Errorf("failed to list lessons for course %s: %w", courseID, err)
	}

	sort.Slice(lessons, func(i, j int) bool { return lessons[i].ID < lessons[j].ID })

	result := make([]*models.Lesson, len(lessons))
	for i := range lessons {
		result[i] = &lessons[i]
	}
	return result, nil
}

// LessonDetailStorage implements the LessonDetailStorage interface for Badger
type LessonDetailStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewLessonDetailStorage creates a new LessonDetailStorage instance
func NewLessonDetailStorage(db *BadgerDB, logger arbor.ILogger) interfaces.LessonDetailStorage {
	return &LessonDetailStorage{db: db, logger: logger}
}

func (s *LessonDetailStorage) Save(detail *models.LessonDetail) error {
	if detail.ID == "" {
		return fmt.Errorf("lesson detail ID is required")
	}

	now := time.Now()
	if detail.CreatedAt.IsZero() {
		detail.CreatedAt = now
	}
	detail.UpdatedAt = now

	if err := s.db.Store().Upsert(detail.ID, detail); err != nil {
		return fmt.Errorf("failed to save lesson detail: %w", err)
	}
	return nil
}

func (s *LessonDetailStorage) ListAll() ([]*models.LessonDetail, error) {
	var details []models.LessonDetail
	if err := s.db.Store().Find(&details, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list lesson details: %w", err)
	}

	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })

	result := make([]*models.LessonDetail, len(details))
	for i := range details {
		result[i] = &details[i]
	}
	return result, nil
}

func (s *LessonDetailStorage) ListByLesson(lessonID string) ([]*models.LessonDetail, error) {
	var details []models.LessonDetail
	if err := s.db.Store().Find(&details, badgerhold.Where("LessonID").Eq(lessonID)); err != nil {
		return nil, fmt.Errorf("failed to list details for lesson %s: %w", lessonID, err)
	}

	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })

	result := make([]*models.LessonDetail, len(details))
	for i := range details {
		result[i] = &details[i]
	}
	return result, nil
}
