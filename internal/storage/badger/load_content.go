package badger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// contentFile is the on-disk shape of a course content TOML file. One file
// may carry any mix of courses, lessons, and lesson details.
type contentFile struct {
	Courses []models.Course       `toml:"courses"`
	Lessons []models.Lesson       `toml:"lessons"`
	Details []models.LessonDetail `toml:"details"`
}

// LoadContentFromFiles loads course content from TOML files in the specified
// directory into the source record stores. Invalid records are skipped with a
// warning rather than aborting the whole load.
func LoadContentFromFiles(storage interfaces.StorageManager, contentDir string, logger arbor.ILogger) error {
	if _, err := os.Stat(contentDir); os.IsNotExist(err) {
		logger.Debug().Str("dir", contentDir).Msg("Content directory does not exist, skipping")
		return nil
	}

	logger.Info().Str("dir", contentDir).Msg("Loading course content from files")

	entries, err := os.ReadDir(contentDir)
	if err != nil {
		return fmt.Errorf("failed to read content directory: %w", err)
	}

	validate := validator.New()
	courses, lessons, details := 0, 0, 0

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}

		filePath := filepath.Join(contentDir, entry.Name())

		tomlBytes, err := os.ReadFile(filePath)
		if err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("Failed to read content file")
			continue
		}

		var file contentFile
		if err := toml.Unmarshal(tomlBytes, &file); err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("Failed to parse content TOML")
			continue
		}

		for i := range file.Courses {
			course := file.Courses[i]
			if err := validate.Struct(&course); err != nil {
				logger.Warn().Err(err).Str("file", entry.Name()).Str("course_id", course.ID).Msg("Skipping invalid course record")
				continue
			}
			if err := storage.CourseStorage().Save(&course); err != nil {
				logger.Warn().Err(err).Str("course_id", course.ID).Msg("Failed to save course")
				continue
			}
			courses++
		}

		for i := range file.Lessons {
			lesson := file.Lessons[i]
			if err := validate.Struct(&lesson); err != nil {
				logger.Warn().Err(err).Str("file", entry.Name()).Str("lesson_id", lesson.ID).Msg("Skipping invalid lesson record")
				continue
			}
			if err := storage.LessonStorage().Save(&lesson); err != nil {
				logger.Warn().Err(err).Str("lesson_id", lesson.ID).Msg("Failed to save lesson")
				continue
			}
			lessons++
		}

		for i := range file.Details {
			detail := file.Details[i]
			if err := validate.Struct(&detail); err != nil {
				logger.Warn().Err(err).Str("file", entry.Name()).Str("detail_id", detail.ID).Msg("Skipping invalid lesson detail record")
				continue
			}
			if err := storage.LessonDetailStorage().Save(&detail); err != nil {
				logger.Warn().Err(err).Str("detail_id", detail.ID).Msg("Failed to save lesson detail")
				continue
			}
			details++
		}
	}

	logger.Info().
		Int("courses", courses).
		Int("lessons", lessons).
		Int("details", details).
		Msg("Course content loaded")

	return nil
}
