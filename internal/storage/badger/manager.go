package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db           *BadgerDB
	document     interfaces.DocumentStorage
	course       interfaces.CourseStorage
	lesson       interfaces.LessonStorage
	lessonDetail interfaces.LessonDetailStorage
	logger       arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:           db,
		document:     NewDocumentStorage(db, logger),
		course:       NewCourseStorage(db, logger),
		lesson:       NewLessonStorage(db, logger),
		lessonDetail: NewLessonDetailStorage(db, logger),
		logger:       logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// DocumentStorage returns the Document storage interface
func (m *Manager) DocumentStorage() interfaces.DocumentStorage {
	return m.document
}

// CourseStorage returns the Course storage interface
func (m *Manager) CourseStorage() interfaces.CourseStorage {
	return m.course
}

// LessonStorage returns the Lesson storage interface
func (m *Manager) LessonStorage() interfaces.LessonStorage {
	return m.lesson
}

// LessonDetailStorage returns the LessonDetail storage interface
func (m *Manager) LessonDetailStorage() interfaces.LessonDetailStorage {
	return m.lessonDetail
}

// Close closes the database connection
func (m *Manager) Close() error {
	return m.db.Close()
}
