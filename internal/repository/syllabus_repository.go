package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ssce/examcell-backend/internal/model"
)

// SyllabusRepository handles syllabus catalog data access.
type SyllabusRepository struct {
	pool *pgxpool.Pool
}

// NewSyllabusRepository creates a new SyllabusRepository.
func NewSyllabusRepository(pool *pgxpool.Pool) *SyllabusRepository {
	return &SyllabusRepository{pool: pool}
}

// Upsert inserts or overwrites a syllabus entry keyed by (regulation,
// dept_code, semester, course_code). Returns whether the row was newly
// inserted.
func (r *SyllabusRepository) Upsert(ctx context.Context, e model.SyllabusEntry) (bool, error) {
	var inserted bool
	err := r.pool.QueryRow(ctx,
		`INSERT INTO syllabus_entries (regulation, dept_code, semester, course_code, course_name)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (regulation, dept_code, semester, course_code)
		 DO UPDATE SET course_name = EXCLUDED.course_name, updated_at = CURRENT_TIMESTAMP
		 RETURNING (xmax = 0)`,
		e.Regulation, e.DeptCode, e.Semester, e.CourseCode, e.CourseName,
	).Scan(&inserted)
	return inserted, err
}

// ListPapers retrieves the papers of one regulation/department/semester,
// ordered by course code ascending.
func (r *SyllabusRepository) ListPapers(ctx context.Context, regulation, deptCode, semester string) ([]model.Paper, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT course_code, course_name
		 FROM syllabus_entries
		 WHERE regulation = $1 AND dept_code = $2 AND semester = $3
		 ORDER BY course_code`,
		regulation, deptCode, semester,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var papers []model.Paper
	for rows.Next() {
		var p model.Paper
		if err := rows.Scan(&p.Code, &p.Name); err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}
