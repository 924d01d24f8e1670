package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ssce/examcell-backend/internal/model"
)

var (
	// ErrUnknownCourse is returned for a course code with no open exam in
	// the session (never scheduled, or already submitted).
	ErrUnknownCourse = errors.New("no open exam for course")
	// ErrUnknownStudent is returned when a presence toggle or a finalize
	// references a register number outside the roster snapshot.
	ErrUnknownStudent = errors.New("student not in roster")
)

// SessionCriteria identifies the exam slot a session was opened for.
type SessionCriteria struct {
	Date       time.Time
	Session    string
	DeptCode   string
	Semester   string
	Regulation string
}

// Session holds the attendance state for one exam slot: the matching
// exams, the roster snapshot taken at open time, and a presence map per
// course initialized all-present (absenteeism is the minority case, so
// operators only toggle the absentees off).
//
// A session is owned by the operator that opened it; nothing is shared
// across sessions, so no locking is involved.
type Session struct {
	criteria SessionCriteria
	batch    string

	exams    map[string]model.ExamInfo
	open     []string // course codes not yet submitted, in lookup order
	roster   []model.Student
	rosterAt map[string]int // regNo -> roster position
	presence map[string]map[string]bool
}

func newSession(criteria SessionCriteria, batch string, exams []model.ExamInfo, roster []model.Student) *Session {
	s := &Session{
		criteria: criteria,
		batch:    batch,
		exams:    make(map[string]model.ExamInfo, len(exams)),
		roster:   roster,
		rosterAt: make(map[string]int, len(roster)),
		presence: make(map[string]map[string]bool, len(exams)),
	}
	for i, stu := range roster {
		s.rosterAt[stu.RegNo] = i
	}
	for _, exam := range exams {
		s.exams[exam.CourseCode] = exam
		s.open = append(s.open, exam.CourseCode)
		present := make(map[string]bool, len(roster))
		for _, stu := range roster {
			present[stu.RegNo] = true
		}
		s.presence[exam.CourseCode] = present
	}
	return s
}

// Batch returns the cohort label inferred for this session.
func (s *Session) Batch() string { return s.batch }

// Roster returns the roster snapshot taken when the session opened.
func (s *Session) Roster() []model.Student { return s.roster }

// OpenExams returns the exams not yet submitted, in lookup order.
func (s *Session) OpenExams() []model.ExamInfo {
	exams := make([]model.ExamInfo, 0, len(s.open))
	for _, code := range s.open {
		exams = append(exams, s.exams[code])
	}
	return exams
}

func (s *Session) openPresence(courseCode string) (map[string]bool, error) {
	for _, code := range s.open {
		if code == courseCode {
			return s.presence[courseCode], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCourse, courseCode)
}

// SetOne flips one student's presence for a course.
func (s *Session) SetOne(courseCode, regNo string, present bool) error {
	presence, err := s.openPresence(courseCode)
	if err != nil {
		return err
	}
	if _, ok := s.rosterAt[regNo]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStudent, regNo)
	}
	presence[regNo] = present
	return nil
}

// SetAll sets every roster member's presence for a course uniformly.
func (s *Session) SetAll(courseCode string, present bool) error {
	presence, err := s.openPresence(courseCode)
	if err != nil {
		return err
	}
	for _, stu := range s.roster {
		presence[stu.RegNo] = present
	}
	return nil
}

// Finalize returns the present register numbers for a course in roster
// order. Every presence entry is checked against the roster snapshot
// first; a stray register number fails the whole finalize rather than
// being silently dropped.
func (s *Session) Finalize(courseCode string) ([]string, error) {
	presence, err := s.openPresence(courseCode)
	if err != nil {
		return nil, err
	}
	for regNo := range presence {
		if _, ok := s.rosterAt[regNo]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownStudent, regNo)
		}
	}

	present := make([]string, 0, len(s.roster))
	for _, stu := range s.roster {
		if presence[stu.RegNo] {
			present = append(present, stu.RegNo)
		}
	}
	return present, nil
}

// close removes a submitted course from the open set so it cannot be
// resubmitted within this session.
func (s *Session) close(courseCode string) {
	for i, code := range s.open {
		if code == courseCode {
			s.open = append(s.open[:i], s.open[i+1:]...)
			return
		}
	}
}
