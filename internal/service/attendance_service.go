package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ssce/examcell-backend/internal/batch"
	"github.com/ssce/examcell-backend/internal/model"
)

// AttendanceStore is the append-only attendance log surface.
type AttendanceStore interface {
	Create(ctx context.Context, record *model.AttendanceRecord) error
}

// AttendanceService orchestrates attendance sessions and submissions.
type AttendanceService struct {
	exams    *ExamService
	students *StudentService
	store    AttendanceStore
	log      zerolog.Logger
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(exams *ExamService, students *StudentService, store AttendanceStore, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		exams:    exams,
		students: students,
		store:    store,
		log:      log.With().Str("component", "attendance_service").Logger(),
	}
}

// OpenSession loads the exams matching the criteria, infers the cohort
// from semester and date, loads that cohort's roster and initializes a
// present-by-default session over it.
//
// Errors: ErrNoExams when nothing is scheduled, batch.ErrInvalidSemester
// when the semester label is unrecognized, NoStudentsError (carrying the
// inferred cohort) when the roster is empty.
func (s *AttendanceService) OpenSession(ctx context.Context, q model.ListExamsQuery) (*Session, error) {
	exams, err := s.exams.ListScheduled(ctx, q)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", q.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, q.Date)
	}

	cohort, err := batch.Infer(q.Semester, date)
	if err != nil {
		return nil, err
	}

	roster, err := s.students.ListStudents(ctx, cohort, q.DeptCode)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, &NoStudentsError{Batch: cohort, DeptCode: q.DeptCode}
	}

	criteria := SessionCriteria{
		Date:       date,
		Session:    q.Session,
		DeptCode:   q.DeptCode,
		Semester:   q.Semester,
		Regulation: q.Regulation,
	}
	return newSession(criteria, cohort, exams, roster), nil
}

// SubmitCourse finalizes one course of a session and stores its record.
// On success the course leaves the session's open set; the other courses
// stay untouched.
func (s *AttendanceService) SubmitCourse(ctx context.Context, sess *Session, courseCode string) (uuid.UUID, error) {
	present, err := sess.Finalize(courseCode)
	if err != nil {
		return uuid.Nil, err
	}

	exam := sess.exams[courseCode]
	record := buildRecord(model.ExamDetails{
		Date:       sess.criteria.Date.Format("2006-01-02"),
		Session:    sess.criteria.Session,
		CourseCode: exam.CourseCode,
		CourseName: exam.CourseName,
		Semester:   exam.Semester,
		DeptCode:   sess.criteria.DeptCode,
		Regulation: exam.Regulation,
	}, present)

	if err := s.store.Create(ctx, record); err != nil {
		return uuid.Nil, err
	}
	sess.close(courseCode)

	s.log.Info().
		Str("course", courseCode).
		Int("present", len(present)).
		Str("record_id", record.ID.String()).
		Msg("Attendance submitted")

	return record.ID, nil
}

// Submit stores a record straight from an HTTP payload (the stateless
// path the UI drives). Only the listed register numbers are stored, all
// PRESENT; anyone not listed is implicitly absent and gets no row.
func (s *AttendanceService) Submit(ctx context.Context, req model.SubmitAttendanceRequest) (uuid.UUID, error) {
	if _, err := time.Parse("2006-01-02", req.ExamDetails.Date); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.ExamDetails.Date)
	}

	record := buildRecord(req.ExamDetails, req.AttendanceList)
	if err := s.store.Create(ctx, record); err != nil {
		return uuid.Nil, err
	}

	s.log.Info().
		Str("course", req.ExamDetails.CourseCode).
		Int("present", len(record.Entries)).
		Str("record_id", record.ID.String()).
		Msg("Attendance submitted")

	return record.ID, nil
}

func buildRecord(exam model.ExamDetails, present []string) *model.AttendanceRecord {
	entries := make([]model.AttendanceEntry, 0, len(present))
	for _, regNo := range present {
		entries = append(entries, model.AttendanceEntry{RegNo: regNo, Status: model.StatusPresent})
	}
	return &model.AttendanceRecord{
		ID:      uuid.New(),
		Exam:    exam,
		Entries: entries,
	}
}
