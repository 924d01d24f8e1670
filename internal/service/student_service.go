package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ssce/examcell-backend/internal/config"
	"github.com/ssce/examcell-backend/internal/model"
)

// RosterStore is the roster lookup surface the services read through.
type RosterStore interface {
	ListByBatchDept(ctx context.Context, batch, deptCode string) ([]model.Student, error)
}

// StudentService serves roster lookups.
type StudentService struct {
	repo  RosterStore
	cache *lookupCache
	log   zerolog.Logger
}

// NewStudentService creates a StudentService. rdb may be nil to disable
// the lookup cache.
func NewStudentService(repo RosterStore, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *StudentService {
	return &StudentService{
		repo:  repo,
		cache: newLookupCache(rdb, ttl, log),
		log:   log.With().Str("component", "student_service").Logger(),
	}
}

// ListStudents returns one cohort's roster for a department, ordered by
// register number. An empty roster is not an error here; callers that
// need one (the attendance session) decide that themselves.
func (s *StudentService) ListStudents(ctx context.Context, batch, deptCode string) ([]model.Student, error) {
	key := config.CacheKey.StudentsKey(batch, deptCode)

	var students []model.Student
	if s.cache.get(ctx, key, &students) {
		return students, nil
	}

	students, err := s.repo.ListByBatchDept(ctx, batch, deptCode)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}

	s.cache.set(ctx, key, students)
	return students, nil
}
