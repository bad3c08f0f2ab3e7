package service

import (
	"context"
	"errors"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

type fakeCourses struct {
	entries map[string][]entities.CourseEntry
}

func (f *fakeCourses) Entries(_ context.Context, code string) ([]entities.CourseEntry, error) {
	e, ok := f.entries[code]
	if !ok {
		return nil, ErrCourseNotFound
	}
	return e, nil
}

func (f *fakeCourses) Steps(ctx context.Context, code string) ([]entities.StepKey, error) {
	e, err := f.Entries(ctx, code)
	if err != nil {
		return nil, err
	}
	return entities.Steps(e), nil
}

type completion struct {
	result   *entities.QuizResult
	advanced *entities.StepKey
}

type fakeProgressRepo struct {
	last        map[string]*entities.StepKey
	completions []completion
	saveErr     error
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{last: make(map[string]*entities.StepKey)}
}

func (f *fakeProgressRepo) GetLastCompleted(_ context.Context, _ int64, code string) (*entities.StepKey, error) {
	return f.last[code], nil
}

func (f *fakeProgressRepo) SaveCompletion(_ context.Context, result *entities.QuizResult, last *entities.StepKey) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.completions = append(f.completions, completion{result: result, advanced: last})
	if last != nil {
		f.last[result.CourseCode] = last
	}
	return nil
}

type fakeQuizStorage struct {
	sessions map[int64]*Session
}

func newFakeQuizStorage() *fakeQuizStorage {
	return &fakeQuizStorage{sessions: make(map[int64]*Session)}
}

func (f *fakeQuizStorage) Store(userID int64, s *Session) { f.sessions[userID] = s }

func (f *fakeQuizStorage) Get(userID int64) (*Session, bool) {
	s, ok := f.sessions[userID]
	return s, ok
}

func (f *fakeQuizStorage) Delete(userID int64) { delete(f.sessions, userID) }

type fakeSource struct {
	catalog      []entities.Course
	courses      map[string][]entities.CourseEntry // keyed by link
	catalogCalls int
	courseCalls  int
}

var errSourceDown = errors.New("source unavailable")

func (f *fakeSource) FetchCatalog(context.Context) ([]entities.Course, error) {
	f.catalogCalls++
	if f.catalog == nil {
		return nil, errSourceDown
	}
	return append([]entities.Course(nil), f.catalog...), nil
}

func (f *fakeSource) FetchCourse(_ context.Context, link string) ([]entities.CourseEntry, error) {
	f.courseCalls++
	e, ok := f.courses[link]
	if !ok {
		return nil, errSourceDown
	}
	return e, nil
}

type fakeCache struct {
	catalog []entities.Course
	entries map[string][]entities.CourseEntry
	readErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]entities.CourseEntry)}
}

func (f *fakeCache) GetCatalog(context.Context) ([]entities.Course, bool, error) {
	if f.readErr != nil {
		return nil, false, f.readErr
	}
	return f.catalog, f.catalog != nil, nil
}

func (f *fakeCache) SetCatalog(_ context.Context, courses []entities.Course) error {
	f.catalog = courses
	return nil
}

func (f *fakeCache) GetEntries(_ context.Context, code string) ([]entities.CourseEntry, bool, error) {
	if f.readErr != nil {
		return nil, false, f.readErr
	}
	e, ok := f.entries[code]
	return e, ok, nil
}

func (f *fakeCache) SetEntries(_ context.Context, code string, entries []entities.CourseEntry) error {
	f.entries[code] = entries
	return nil
}
