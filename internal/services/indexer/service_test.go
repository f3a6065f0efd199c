package indexer

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

type fakeDocStorage struct {
	mu         sync.Mutex
	docs       map[string]*models.IndexedDocument
	generation string
	insertErr  error
	swapErr    error
}

func newFakeDocStorage() *fakeDocStorage {
	return &fakeDocStorage{docs: make(map[string]*models.IndexedDocument)}
}

func (f *fakeDocStorage) Insert(doc *models.IndexedDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocStorage) ListAll() ([]*models.IndexedDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.IndexedDocument
	for _, doc := range f.docs {
		if doc.Generation == f.generation {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDocStorage) Count() (int, error) {
	docs, _ := f.ListAll()
	return len(docs), nil
}

func (f *fakeDocStorage) CurrentGeneration() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generation, nil
}

func (f *fakeDocStorage) SetCurrentGeneration(gen string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.swapErr != nil {
		return f.swapErr
	}
	f.generation = gen
	return nil
}

func (f *fakeDocStorage) DeleteGeneration(gen string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, doc := range f.docs {
		if doc.Generation == gen {
			delete(f.docs, id)
		}
	}
	return nil
}

func (f *fakeDocStorage) Generations() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]bool)
	for _, doc := range f.docs {
		seen[doc.Generation] = true
	}
	var out []string
	for gen := range seen {
		out = append(out, gen)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeDocStorage) allDocs() []*models.IndexedDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.IndexedDocument
	for _, doc := range f.docs {
		out = append(out, doc)
	}
	return out
}

type fakeCourseStorage struct{ courses []*models.Course }

func (f *fakeCourseStorage) Save(course *models.Course) error   { return nil }
func (f *fakeCourseStorage) ListAll() ([]*models.Course, error) { return f.courses, nil }

type fakeLessonStorage struct{ lessons []*models.Lesson }

func (f *fakeLessonStorage) Save(lesson *models.Lesson) error   { return nil }
func (f *fakeLessonStorage) ListAll() ([]*models.Lesson, error) { return f.lessons, nil }
func (f *fakeLessonStorage) ListByCourse(courseID string) ([]*models.Lesson, error) {
	var out []*models.Lesson
	for _, l := range f.lessons {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeDetailStorage struct{ details []*models.LessonDetail }

func (f *fakeDetailStorage) Save(detail *models.LessonDetail) error   { return nil }
func (f *fakeDetailStorage) ListAll() ([]*models.LessonDetail, error) { return f.details, nil }
func (f *fakeDetailStorage) ListByLesson(lessonID string) ([]*models.LessonDetail, error) {
	var out []*models.LessonDetail
	for _, d := range f.details {
		if d.LessonID == lessonID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeStorageManager struct {
	documents *fakeDocStorage
	courses   *fakeCourseStorage
	lessons   *fakeLessonStorage
	details   *fakeDetailStorage
}

func newFakeStorageManager() *fakeStorageManager {
	return &fakeStorageManager{
		documents: newFakeDocStorage(),
		courses:   &fakeCourseStorage{},
		lessons:   &fakeLessonStorage{},
		details:   &fakeDetailStorage{},
	}
}

func (f *fakeStorageManager) DocumentStorage() interfaces.DocumentStorage         { return f.documents }
func (f *fakeStorageManager) CourseStorage() interfaces.CourseStorage             { return f.courses }
func (f *fakeStorageManager) LessonStorage() interfaces.LessonStorage             { return f.lessons }
func (f *fakeStorageManager) LessonDetailStorage() interfaces.LessonDetailStorage { return f.details }
func (f *fakeStorageManager) Close() error                                        { return nil }

type fakeIndexEmbedder struct {
	mu      sync.Mutex
	calls   int
	failOn  int // 1-based call number to fail on; 0 never fails
	started chan struct{}
	release chan struct{}
}

func (f *fakeIndexEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	if f.started != nil && call == 1 {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.failOn > 0 && call >= f.failOn {
		return nil, errors.New("embedding API unavailable")
	}
	return []float64{1, 0, 0}, nil
}

func (f *fakeIndexEmbedder) GenerateQueryEmbedding(ctx context.Context, query string) ([]float64, error) {
	return f.GenerateEmbedding(ctx, query)
}

func (f *fakeIndexEmbedder) Dimension() int                       { return 3 }
func (f *fakeIndexEmbedder) IsAvailable(ctx context.Context) bool { return true }

func seedReactNativeCourse(storage *fakeStorageManager) {
	storage.courses.courses = []*models.Course{
		{ID: "course-rn", Title: "React Native Basics", Duration: "10h", Participants: 1200, Rating: 4.8},
	}
	for i := 0; i < 10; i++ {
		storage.lessons.lessons = append(storage.lessons.lessons, &models.Lesson{
			ID:       "lesson-" + string(rune('a'+i)),
			CourseID: "course-rn",
			Title:    "Lesson " + string(rune('A'+i)),
			Content:  "lesson content",
		})
	}
}

func TestRebuildIndex_EndToEnd(t *testing.T) {
	storage := newFakeStorageManager()
	seedReactNativeCourse(storage)

	service := NewService(storage, &fakeIndexEmbedder{}, 0, arbor.NewLogger())

	stats, err := service.RebuildIndex(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 11, stats.TotalDocuments)
	assert.Equal(t, 1, stats.DocumentsBySource[models.SourceTypeCourse])
	assert.Equal(t, 10, stats.DocumentsBySource[models.SourceTypeLesson])
	assert.True(t, strings.HasPrefix(stats.Generation, "gen_"))

	gen, err := storage.documents.CurrentGeneration()
	require.NoError(t, err)
	assert.Equal(t, stats.Generation, gen)

	docs, err := storage.documents.ListAll()
	require.NoError(t, err)
	require.Len(t, docs, 11)

	var courseDoc *models.IndexedDocument
	for _, doc := range docs {
		if doc.SourceType == models.SourceTypeCourse {
			courseDoc = doc
		}
		assert.Equal(t, stats.Generation, doc.Generation)
		assert.NotEmpty(t, doc.Vector)
	}
	require.NotNil(t, courseDoc, "exactly one course document expected")
	assert.Equal(t, "course-rn", courseDoc.SourceID)
	assert.Contains(t, courseDoc.Text, "React Native Basics")
	assert.Contains(t, courseDoc.Text, "10")
}

func TestRebuildIndex_ConcurrentGuard(t *testing.T) {
	storage := newFakeStorageManager()
	seedReactNativeCourse(storage)

	embedder := &fakeIndexEmbedder{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	service := NewService(storage, embedder, 0, arbor.NewLogger())

	done := make(chan error, 1)
	go func() {
		_, err := service.RebuildIndex(context.Background())
		done <- err
	}()

	<-embedder.started
	assert.True(t, service.IsRebuilding())

	_, err := service.RebuildIndex(context.Background())
	assert.ErrorIs(t, err, models.ErrRebuildInProgress)

	close(embedder.release)
	require.NoError(t, <-done)
	assert.False(t, service.IsRebuilding())
}

func TestRebuildIndex_EmbedFailureLeavesPreviousGeneration(t *testing.T) {
	storage := newFakeStorageManager()
	seedReactNativeCourse(storage)
	service := NewService(storage, &fakeIndexEmbedder{}, 0, arbor.NewLogger())

	stats, err := service.RebuildIndex(context.Background())
	require.NoError(t, err)

	failing := NewService(storage, &fakeIndexEmbedder{failOn: 3}, 0, arbor.NewLogger())
	_, err = failing.RebuildIndex(context.Background())
	require.Error(t, err)

	var indexErr *models.IndexingError
	require.True(t, errors.As(err, &indexErr))
	assert.Equal(t, "embed", indexErr.Stage)

	// Published corpus is untouched by the failed rebuild.
	gen, err := storage.documents.CurrentGeneration()
	require.NoError(t, err)
	assert.Equal(t, stats.Generation, gen)

	docs, err := storage.documents.ListAll()
	require.NoError(t, err)
	assert.Len(t, docs, 11)

	// Documents written before the failure are discarded, not orphaned.
	for _, doc := range storage.documents.allDocs() {
		assert.Equal(t, stats.Generation, doc.Generation)
	}
	gens, err := storage.documents.Generations()
	require.NoError(t, err)
	assert.Equal(t, []string{stats.Generation}, gens)
}

func TestRebuildIndex_Idempotent(t *testing.T) {
	storage := newFakeStorageManager()
	seedReactNativeCourse(storage)
	service := NewService(storage, &fakeIndexEmbedder{}, 0, arbor.NewLogger())

	first, err := service.RebuildIndex(context.Background())
	require.NoError(t, err)
	second, err := service.RebuildIndex(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.TotalDocuments, second.TotalDocuments)
	assert.NotEqual(t, first.Generation, second.Generation)

	// Stale generations are cleaned up after the swap.
	gens, err := storage.documents.Generations()
	require.NoError(t, err)
	assert.Equal(t, []string{second.Generation}, gens)
	assert.Len(t, storage.documents.allDocs(), second.TotalDocuments)
}

func TestRebuildIndex_EmptySourcePublishesEmptyGeneration(t *testing.T) {
	storage := newFakeStorageManager()
	service := NewService(storage, &fakeIndexEmbedder{}, 0, arbor.NewLogger())

	stats, err := service.RebuildIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalDocuments)

	gen, err := storage.documents.CurrentGeneration()
	require.NoError(t, err)
	assert.Equal(t, stats.Generation, gen)
}

func TestStats(t *testing.T) {
	storage := newFakeStorageManager()
	seedReactNativeCourse(storage)
	storage.details.details = []*models.LessonDetail{
		{ID: "detail-1", LessonID: "lesson-a", Name: "Cheatsheet"},
	}
	service := NewService(storage, &fakeIndexEmbedder{}, 0, arbor.NewLogger())

	rebuilt, err := service.RebuildIndex(context.Background())
	require.NoError(t, err)

	stats, err := service.Stats()
	require.NoError(t, err)
	assert.Equal(t, rebuilt.TotalDocuments, stats.TotalDocuments)
	assert.Equal(t, rebuilt.Generation, stats.Generation)
	assert.Equal(t, 1, stats.DocumentsBySource[models.SourceTypeDetail])
	assert.False(t, stats.LastRebuilt.IsZero())
}
