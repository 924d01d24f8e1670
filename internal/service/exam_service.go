package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ssce/examcell-backend/internal/config"
	"github.com/ssce/examcell-backend/internal/model"
	"github.com/ssce/examcell-backend/internal/repository"
)

// ExamStore is the timetable lookup surface the services read through.
type ExamStore interface {
	ListExams(ctx context.Context, f repository.ExamFilter) ([]model.TimetableEntry, error)
}

// ExamService serves scheduled-exam lookups.
type ExamService struct {
	repo  ExamStore
	cache *lookupCache
	log   zerolog.Logger
}

// NewExamService creates an ExamService. rdb may be nil to disable the
// lookup cache.
func NewExamService(repo ExamStore, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *ExamService {
	return &ExamService{
		repo:  repo,
		cache: newLookupCache(rdb, ttl, log),
		log:   log.With().Str("component", "exam_service").Logger(),
	}
}

// ListScheduled returns the exams matching the query, ordered by course
// code. A date that does not parse is ErrInvalidDate; an empty result is
// ErrNoExams.
func (s *ExamService) ListScheduled(ctx context.Context, q model.ListExamsQuery) ([]model.ExamInfo, error) {
	date, err := time.Parse("2006-01-02", q.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, q.Date)
	}

	key := config.CacheKey.ExamsKey(q.Date, q.Session, q.DeptCode, q.Semester, q.Regulation)

	var exams []model.ExamInfo
	if s.cache.get(ctx, key, &exams) && len(exams) > 0 {
		return exams, nil
	}

	entries, err := s.repo.ListExams(ctx, repository.ExamFilter{
		Date:       date,
		Session:    q.Session,
		DeptCode:   q.DeptCode,
		Semester:   q.Semester,
		Regulation: q.Regulation,
	})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoExams
	}

	exams = make([]model.ExamInfo, 0, len(entries))
	for _, e := range entries {
		exams = append(exams, model.ExamInfo{
			CourseCode: e.CourseCode,
			CourseName: e.CourseName,
			Semester:   e.Semester,
			Regulation: e.Regulation,
		})
	}

	s.cache.set(ctx, key, exams)
	return exams, nil
}
