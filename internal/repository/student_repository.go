package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ssce/examcell-backend/internal/model"
)

// StudentRepository handles roster data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// Upsert inserts or overwrites a student keyed by (dept_code, batch,
// regno). Returns whether the row was newly inserted; xmax = 0
// distinguishes a fresh insert from a conflict update.
func (r *StudentRepository) Upsert(ctx context.Context, s model.Student) (bool, error) {
	var inserted bool
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (regno, name, batch, dept_code)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (dept_code, batch, regno)
		 DO UPDATE SET name = EXCLUDED.name, updated_at = CURRENT_TIMESTAMP
		 RETURNING (xmax = 0)`,
		s.RegNo, s.Name, s.Batch, s.DeptCode,
	).Scan(&inserted)
	return inserted, err
}

// ListByBatchDept retrieves one cohort's roster for a department, ordered
// by register number ascending.
func (r *StudentRepository) ListByBatchDept(ctx context.Context, batch, deptCode string) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT regno, name, batch, dept_code
		 FROM students
		 WHERE batch = $1 AND dept_code = $2
		 ORDER BY regno`,
		batch, deptCode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.RegNo, &s.Name, &s.Batch, &s.DeptCode); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
