package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ssce/examcell-backend/internal/importer"
	"github.com/ssce/examcell-backend/internal/model"
)

// ImportStore adapts the repositories to the reconciler's Store
// interface, translating connection-level failures into
// importer.ErrStoreUnavailable so the reconciler can tell a fatal outage
// apart from a bad row.
type ImportStore struct {
	students  *StudentRepository
	syllabus  *SyllabusRepository
	timetable *TimetableRepository
}

// NewImportStore creates an ImportStore over the three import targets.
func NewImportStore(students *StudentRepository, syllabus *SyllabusRepository, timetable *TimetableRepository) *ImportStore {
	return &ImportStore{students: students, syllabus: syllabus, timetable: timetable}
}

func (s *ImportStore) UpsertStudent(ctx context.Context, st model.Student) (bool, error) {
	inserted, err := s.students.Upsert(ctx, st)
	return inserted, classifyStoreErr(err)
}

func (s *ImportStore) UpsertSyllabusEntry(ctx context.Context, e model.SyllabusEntry) (bool, error) {
	inserted, err := s.syllabus.Upsert(ctx, e)
	return inserted, classifyStoreErr(err)
}

func (s *ImportStore) UpsertTimetableEntry(ctx context.Context, e model.TimetableEntry) (bool, error) {
	inserted, err := s.timetable.Upsert(ctx, e)
	return inserted, classifyStoreErr(err)
}

// classifyStoreErr keeps server-reported errors (constraint or data
// problems with this particular row) as row-level failures. Anything
// else, such as dial errors or a closed pool, means the store itself
// is unreachable.
func classifyStoreErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return err
	}
	return fmt.Errorf("%w: %v", importer.ErrStoreUnavailable, err)
}
