package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

func newTestCourseService() (*CourseService, *fakeSource, *fakeCache) {
	source := &fakeSource{
		catalog: []entities.Course{
			{Code: "ko-fr", SourceLanguage: "한국어", TargetLanguage: "프랑스어", Link: "link-fr"},
			{Code: "en-fr", SourceLanguage: "영어", TargetLanguage: "프랑스어", Link: "link-en-fr"},
			{Code: "ko-ja", SourceLanguage: "한국어", TargetLanguage: "일본어", Link: "link-ja"},
			{Code: "ja-ko", SourceLanguage: "일본어", TargetLanguage: "한국어", Link: "missing"},
		},
		courses: map[string][]entities.CourseEntry{
			"link-fr":    append(stepEntries("1", "1", 1, 1), stepEntries("1", "2", 1, 1)...),
			"link-en-fr": stepEntries("1", "1", 1, 0),
			"link-ja":    stepEntries("2", "1", 0, 1),
		},
	}
	cache := newFakeCache()
	return NewCourseService(source, cache, zap.NewNop()), source, cache
}

func TestCourseService_CatalogIsSortedAndCached(t *testing.T) {
	svc, source, _ := newTestCourseService()
	ctx := context.Background()

	courses, err := svc.Catalog(ctx)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	want := []string{"en-fr", "ja-ko", "ko-fr", "ko-ja"}
	for i, code := range want {
		if courses[i].Code != code {
			t.Fatalf("expected order %v, got %+v", want, courses)
		}
	}

	if _, err := svc.Catalog(ctx); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if source.catalogCalls != 1 {
		t.Errorf("expected 1 catalog fetch, got %d", source.catalogCalls)
	}
}

func TestCourseService_CacheReadErrorFallsBackToSource(t *testing.T) {
	svc, source, cache := newTestCourseService()
	cache.readErr = errors.New("redis down")

	if _, err := svc.Entries(context.Background(), "ko-fr"); err != nil {
		t.Fatalf("entries: %v", err)
	}
	if source.catalogCalls != 1 || source.courseCalls != 1 {
		t.Errorf("expected source fetches, got %d/%d", source.catalogCalls, source.courseCalls)
	}
}

func TestCourseService_StepsAndLesson(t *testing.T) {
	svc, source, _ := newTestCourseService()
	ctx := context.Background()

	steps, err := svc.Steps(ctx, "ko-fr")
	if err != nil {
		t.Fatalf("steps: %v", err)
	}
	if len(steps) != 2 || steps[1] != (entities.StepKey{Unit: "1", Step: "2"}) {
		t.Fatalf("unexpected steps %v", steps)
	}

	step, err := svc.StepAt(ctx, "ko-fr", 1)
	if err != nil || step != steps[1] {
		t.Fatalf("step at 1: %v, %v", step, err)
	}
	if _, err := svc.StepAt(ctx, "ko-fr", 2); !errors.Is(err, ErrStepNotFound) {
		t.Errorf("expected ErrStepNotFound, got %v", err)
	}

	text, ok, err := svc.Lesson(ctx, "ko-fr", step)
	if err != nil || !ok || text != "lesson 1-2" {
		t.Errorf("unexpected lesson %q, %v, %v", text, ok, err)
	}

	_, ok, err = svc.Lesson(ctx, "ko-fr", entities.StepKey{Unit: "9", Step: "9"})
	if err != nil || ok {
		t.Errorf("expected no lesson, got %v, %v", ok, err)
	}

	if source.courseCalls != 1 {
		t.Errorf("expected entries to be fetched once, got %d", source.courseCalls)
	}
}

func TestCourseService_UnknownCourse(t *testing.T) {
	svc, _, _ := newTestCourseService()

	if _, err := svc.Entries(context.Background(), "xx"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCourseService_Refresh(t *testing.T) {
	svc, source, cache := newTestCourseService()
	ctx := context.Background()

	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(cache.entries) != 3 {
		t.Errorf("expected 3 cached courses, got %d", len(cache.entries))
	}
	if _, ok := cache.entries["ja-ko"]; ok {
		t.Error("failing course was cached")
	}

	source.catalog = nil
	if err := svc.Refresh(ctx); !errors.Is(err, errSourceDown) {
		t.Errorf("expected source error, got %v", err)
	}
}

func TestProgressService_Summary(t *testing.T) {
	entries := append(stepEntries("1", "1", 1, 1), stepEntries("1", "2", 1, 1)...)
	entries = append(entries, stepEntries("2", "1", 1, 1)...)
	courses := &fakeCourses{entries: map[string][]entities.CourseEntry{"ko-fr": entries}}

	progress := newFakeProgressRepo()
	results := &fakeResultRepo{}
	svc := NewProgressService(progress, results, courses)
	ctx := context.Background()

	summary, err := svc.GetProgressSummary(ctx, testUser, "ko-fr")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.CompletedSteps != 0 || summary.TotalSteps != 3 || summary.LastCompleted != nil {
		t.Errorf("unexpected empty summary %+v", summary)
	}

	progress.last["ko-fr"] = &entities.StepKey{Unit: "1", Step: "2"}
	summary, err = svc.GetProgressSummary(ctx, testUser, "ko-fr")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.CompletedSteps != 2 {
		t.Errorf("expected 2 completed steps, got %d", summary.CompletedSteps)
	}
	if results.limit != recentResultsLimit {
		t.Errorf("expected limit %d, got %d", recentResultsLimit, results.limit)
	}
}

type fakeResultRepo struct {
	limit int
}

func (f *fakeResultRepo) ListRecent(_ context.Context, _ int64, _ string, limit int) ([]*entities.QuizResult, error) {
	f.limit = limit
	return nil, nil
}
