package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ssce/examcell-backend/internal/config"
	"github.com/ssce/examcell-backend/internal/model"
)

// PaperStore is the syllabus lookup surface the services read through.
type PaperStore interface {
	ListPapers(ctx context.Context, regulation, deptCode, semester string) ([]model.Paper, error)
}

// SyllabusService serves syllabus catalog lookups.
type SyllabusService struct {
	repo  PaperStore
	cache *lookupCache
	log   zerolog.Logger
}

// NewSyllabusService creates a SyllabusService. rdb may be nil to disable
// the lookup cache.
func NewSyllabusService(repo PaperStore, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *SyllabusService {
	return &SyllabusService{
		repo:  repo,
		cache: newLookupCache(rdb, ttl, log),
		log:   log.With().Str("component", "syllabus_service").Logger(),
	}
}

// ListPapers returns the papers for one regulation/department/semester,
// ordered by course code. An empty catalog is ErrNoPapers.
func (s *SyllabusService) ListPapers(ctx context.Context, regulation, deptCode, semester string) ([]model.Paper, error) {
	key := config.CacheKey.PapersKey(regulation, deptCode, semester)

	var papers []model.Paper
	if s.cache.get(ctx, key, &papers) && len(papers) > 0 {
		return papers, nil
	}

	papers, err := s.repo.ListPapers(ctx, regulation, deptCode, semester)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, ErrNoPapers
	}

	s.cache.set(ctx, key, papers)
	return papers, nil
}
