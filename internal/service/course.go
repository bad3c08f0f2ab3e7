package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

// CourseService provides catalog and course content, reading through the cache.
type CourseService struct {
	source CourseSource
	cache  CourseCache
	logger *zap.Logger
}

// NewCourseService creates a new course service.
func NewCourseService(source CourseSource, cache CourseCache, logger *zap.Logger) *CourseService {
	return &CourseService{
		source: source,
		cache:  cache,
		logger: logger,
	}
}

// Catalog returns all courses ordered by source language.
func (s *CourseService) Catalog(ctx context.Context) ([]entities.Course, error) {
	courses, ok, err := s.cache.GetCatalog(ctx)
	if err != nil {
		s.logger.Warn("catalog cache read failed", zap.Error(err))
	}
	if ok {
		return courses, nil
	}

	return s.reloadCatalog(ctx)
}

// Course returns the catalog row with the given code.
func (s *CourseService) Course(ctx context.Context, code string) (*entities.Course, error) {
	courses, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	for i := range courses {
		if courses[i].Code == code {
			return &courses[i], nil
		}
	}

	return nil, fmt.Errorf("course %q: %w", code, ErrCourseNotFound)
}

// Entries returns the ordered rows of a course.
func (s *CourseService) Entries(ctx context.Context, code string) ([]entities.CourseEntry, error) {
	entries, ok, err := s.cache.GetEntries(ctx, code)
	if err != nil {
		s.logger.Warn("course cache read failed",
			zap.String("course", code),
			zap.Error(err),
		)
	}
	if ok {
		return entries, nil
	}

	course, err := s.Course(ctx, code)
	if err != nil {
		return nil, err
	}

	return s.reloadEntries(ctx, course)
}

// Steps returns the ordered steps of a course.
func (s *CourseService) Steps(ctx context.Context, code string) ([]entities.StepKey, error) {
	entries, err := s.Entries(ctx, code)
	if err != nil {
		return nil, err
	}
	return entities.Steps(entries), nil
}

// StepAt returns the step with the given ordinal.
func (s *CourseService) StepAt(ctx context.Context, code string, idx int) (entities.StepKey, error) {
	steps, err := s.Steps(ctx, code)
	if err != nil {
		return entities.StepKey{}, err
	}
	if idx < 0 || idx >= len(steps) {
		return entities.StepKey{}, fmt.Errorf("step %d of %q: %w", idx, code, ErrStepNotFound)
	}
	return steps[idx], nil
}

// Lesson returns the explanation text of a step. ok is false when the step has none.
func (s *CourseService) Lesson(ctx context.Context, code string, step entities.StepKey) (text string, ok bool, err error) {
	entries, err := s.Entries(ctx, code)
	if err != nil {
		return "", false, err
	}
	text, ok = entities.Explanation(entries, step)
	return text, ok, nil
}

// Refresh reloads the catalog and every course from the source, replacing cached copies.
// A failing course is logged and skipped.
func (s *CourseService) Refresh(ctx context.Context) error {
	courses, err := s.reloadCatalog(ctx)
	if err != nil {
		return err
	}

	loaded := 0
	for i := range courses {
		if _, err := s.reloadEntries(ctx, &courses[i]); err != nil {
			s.logger.Error("failed to refresh course",
				zap.String("course", courses[i].Code),
				zap.Error(err),
			)
			continue
		}
		loaded++
	}

	s.logger.Info("courses refreshed",
		zap.Int("catalog_size", len(courses)),
		zap.Int("loaded", loaded),
	)

	return nil
}

func (s *CourseService) reloadCatalog(ctx context.Context) ([]entities.Course, error) {
	courses, err := s.source.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	sortCatalog(courses)

	if err := s.cache.SetCatalog(ctx, courses); err != nil {
		s.logger.Warn("catalog cache write failed", zap.Error(err))
	}

	return courses, nil
}

func (s *CourseService) reloadEntries(ctx context.Context, course *entities.Course) ([]entities.CourseEntry, error) {
	entries, err := s.source.FetchCourse(ctx, course.Link)
	if err != nil {
		return nil, fmt.Errorf("fetch course %q: %w", course.Code, err)
	}

	if err := s.cache.SetEntries(ctx, course.Code, entries); err != nil {
		s.logger.Warn("course cache write failed",
			zap.String("course", course.Code),
			zap.Error(err),
		)
	}

	return entries, nil
}

// sortCatalog orders courses by source language using Korean collation,
// keeping the sheet order inside each language.
func sortCatalog(courses []entities.Course) {
	c := collate.New(language.Korean)
	sort.SliceStable(courses, func(i, j int) bool {
		return c.CompareString(courses[i].SourceLanguage, courses[j].SourceLanguage) < 0
	})
}
