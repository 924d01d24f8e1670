package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ssce/examcell-backend/internal/model"
)

// ErrDuplicateAttendance is returned when a record for the same exam
// (date, session, dept, course) has already been submitted.
var ErrDuplicateAttendance = errors.New("attendance already submitted for this exam")

// AttendanceRepository handles the append-only attendance log.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Create stores one attendance record with its entries in submission
// order. Records are never updated afterwards. The composite unique
// index on the exam snapshot rejects a second record for the same exam.
func (r *AttendanceRepository) Create(ctx context.Context, record *model.AttendanceRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO attendance_records
			   (id, exam_date, session, course_code, course_name, semester, dept_code, regulation)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING created_at`,
			record.ID, record.Exam.Date, record.Exam.Session, record.Exam.CourseCode,
			record.Exam.CourseName, record.Exam.Semester, record.Exam.DeptCode, record.Exam.Regulation,
		).Scan(&record.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrDuplicateAttendance
			}
			return err
		}

		for i, entry := range record.Entries {
			if _, err := tx.Exec(ctx,
				`INSERT INTO attendance_entries (record_id, position, regno, status)
				 VALUES ($1, $2, $3, $4)`,
				record.ID, i, entry.RegNo, string(entry.Status),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves one attendance record with its entries in stored
// order.
func (r *AttendanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AttendanceRecord, error) {
	record := &model.AttendanceRecord{ID: id}
	err := r.pool.QueryRow(ctx,
		`SELECT exam_date, session, course_code, course_name, semester, dept_code, regulation, created_at
		 FROM attendance_records WHERE id = $1`, id,
	).Scan(&record.Exam.Date, &record.Exam.Session, &record.Exam.CourseCode, &record.Exam.CourseName,
		&record.Exam.Semester, &record.Exam.DeptCode, &record.Exam.Regulation, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT regno, status FROM attendance_entries
		 WHERE record_id = $1 ORDER BY position`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry model.AttendanceEntry
		var status string
		if err := rows.Scan(&entry.RegNo, &status); err != nil {
			return nil, err
		}
		entry.Status = model.AttendanceStatus(status)
		record.Entries = append(record.Entries, entry)
	}
	return record, rows.Err()
}
