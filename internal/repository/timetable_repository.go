package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ssce/examcell-backend/internal/model"
)

// ExamFilter narrows a scheduled-exam lookup. Date, Session and DeptCode
// are mandatory; Semester and Regulation narrow further when non-empty.
type ExamFilter struct {
	Date       time.Time
	Session    string
	DeptCode   string
	Semester   string
	Regulation string
}

// TimetableRepository handles exam timetable data access.
type TimetableRepository struct {
	pool *pgxpool.Pool
}

// NewTimetableRepository creates a new TimetableRepository.
func NewTimetableRepository(pool *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{pool: pool}
}

// Upsert inserts or overwrites a timetable entry keyed by (exam_date,
// session, dept_code, course_code). Returns whether the row was newly
// inserted.
func (r *TimetableRepository) Upsert(ctx context.Context, e model.TimetableEntry) (bool, error) {
	var inserted bool
	err := r.pool.QueryRow(ctx,
		`INSERT INTO timetable_entries (exam_date, session, dept_code, semester, regulation, course_code, course_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (exam_date, session, dept_code, course_code)
		 DO UPDATE SET semester = EXCLUDED.semester,
		               regulation = EXCLUDED.regulation,
		               course_name = EXCLUDED.course_name,
		               updated_at = CURRENT_TIMESTAMP
		 RETURNING (xmax = 0)`,
		e.Date, string(e.Session), e.DeptCode, e.Semester, e.Regulation, e.CourseCode, e.CourseName,
	).Scan(&inserted)
	return inserted, err
}

// ListExams retrieves the exams matching the filter, ordered by course
// code ascending.
func (r *TimetableRepository) ListExams(ctx context.Context, f ExamFilter) ([]model.TimetableEntry, error) {
	query := `SELECT exam_date, session, dept_code, semester, regulation, course_code, course_name
	          FROM timetable_entries
	          WHERE exam_date = $1 AND session = $2 AND dept_code = $3`
	args := []interface{}{f.Date, f.Session, f.DeptCode}

	if f.Semester != "" {
		args = append(args, f.Semester)
		query += ` AND semester = $` + strconv.Itoa(len(args))
	}
	if f.Regulation != "" {
		args = append(args, f.Regulation)
		query += ` AND regulation = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY course_code`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.TimetableEntry
	for rows.Next() {
		var e model.TimetableEntry
		var session string
		if err := rows.Scan(&e.Date, &session, &e.DeptCode, &e.Semester, &e.Regulation, &e.CourseCode, &e.CourseName); err != nil {
			return nil, err
		}
		e.Session = model.ExamSession(session)
		exams = append(exams, e)
	}
	return exams, rows.Err()
}
