package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/ssce/examcell-backend/internal/batch"
	"github.com/ssce/examcell-backend/internal/model"
	"github.com/ssce/examcell-backend/internal/repository"
)

type fakeExamStore struct {
	exams []model.TimetableEntry
}

func (f *fakeExamStore) ListExams(_ context.Context, filter repository.ExamFilter) ([]model.TimetableEntry, error) {
	var out []model.TimetableEntry
	for _, e := range f.exams {
		if !e.Date.Equal(filter.Date) || string(e.Session) != filter.Session || e.DeptCode != filter.DeptCode {
			continue
		}
		if filter.Semester != "" && e.Semester != filter.Semester {
			continue
		}
		if filter.Regulation != "" && e.Regulation != filter.Regulation {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeRosterStore struct {
	students []model.Student
}

func (f *fakeRosterStore) ListByBatchDept(_ context.Context, batch, deptCode string) ([]model.Student, error) {
	var out []model.Student
	for _, s := range f.students {
		if s.Batch == batch && s.DeptCode == deptCode {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAttendanceStore struct {
	records []*model.AttendanceRecord
}

func (f *fakeAttendanceStore) Create(_ context.Context, record *model.AttendanceRecord) error {
	f.records = append(f.records, record)
	return nil
}

func examDate() time.Time {
	return time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
}

// Semester III in November 2025 belongs to the 2024-2027 cohort.
func testFixture() (*AttendanceService, *fakeAttendanceStore) {
	exams := &fakeExamStore{exams: []model.TimetableEntry{
		{Date: examDate(), Session: "FN", DeptCode: "104", Semester: "III", Regulation: "2025", CourseCode: "CS3301", CourseName: "DATA STRUCTURES"},
		{Date: examDate(), Session: "FN", DeptCode: "104", Semester: "III", Regulation: "2025", CourseCode: "CS3351", CourseName: "DIGITAL PRINCIPLES"},
	}}
	roster := &fakeRosterStore{students: []model.Student{
		{RegNo: "961222104001", Name: "ANITHA R", Batch: "2024-2027", DeptCode: "104"},
		{RegNo: "961222104002", Name: "KUMAR S", Batch: "2024-2027", DeptCode: "104"},
		{RegNo: "961222104003", Name: "PRIYA V", Batch: "2024-2027", DeptCode: "104"},
	}}
	store := &fakeAttendanceStore{}

	log := zerolog.Nop()
	examService := NewExamService(exams, nil, 0, log)
	studentService := NewStudentService(roster, nil, 0, log)
	return NewAttendanceService(examService, studentService, store, log), store
}

func sessionQuery() model.ListExamsQuery {
	return model.ListExamsQuery{
		Date: "2025-11-10", Session: "FN", DeptCode: "104",
		Semester: "III", Regulation: "2025",
	}
}

func TestOpenSessionDefaultsAllPresent(t *testing.T) {
	svc, _ := testFixture()

	sess, err := svc.OpenSession(context.Background(), sessionQuery())
	if err != nil {
		t.Fatal(err)
	}

	if sess.Batch() != "2024-2027" {
		t.Errorf("batch = %q, want 2024-2027", sess.Batch())
	}
	if got := len(sess.OpenExams()); got != 2 {
		t.Fatalf("open exams = %d, want 2", got)
	}

	present, err := sess.Finalize("CS3301")
	if err != nil {
		t.Fatal(err)
	}
	if len(present) != 3 {
		t.Errorf("present = %v, want the full roster", present)
	}
}

func TestSessionSetAllThenSetOne(t *testing.T) {
	svc, _ := testFixture()
	sess, err := svc.OpenSession(context.Background(), sessionQuery())
	if err != nil {
		t.Fatal(err)
	}

	if err := sess.SetAll("CS3301", false); err != nil {
		t.Fatal(err)
	}
	if err := sess.SetOne("CS3301", "961222104002", true); err != nil {
		t.Fatal(err)
	}

	present, err := sess.Finalize("CS3301")
	if err != nil {
		t.Fatal(err)
	}
	if len(present) != 1 || present[0] != "961222104002" {
		t.Errorf("present = %v, want exactly [961222104002]", present)
	}

	// The other course's presence is untouched.
	other, err := sess.Finalize("CS3351")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 3 {
		t.Errorf("CS3351 present = %v, want full roster", other)
	}
}

func TestSessionFinalizeRosterOrder(t *testing.T) {
	svc, _ := testFixture()
	sess, err := svc.OpenSession(context.Background(), sessionQuery())
	if err != nil {
		t.Fatal(err)
	}

	if err := sess.SetOne("CS3301", "961222104002", false); err != nil {
		t.Fatal(err)
	}
	present, err := sess.Finalize("CS3301")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"961222104001", "961222104003"}
	if len(present) != 2 || present[0] != want[0] || present[1] != want[1] {
		t.Errorf("present = %v, want %v in roster order", present, want)
	}
}

func TestSessionRejectsUnknownStudentAndCourse(t *testing.T) {
	svc, _ := testFixture()
	sess, err := svc.OpenSession(context.Background(), sessionQuery())
	if err != nil {
		t.Fatal(err)
	}

	if err := sess.SetOne("CS3301", "000000000000", true); !errors.Is(err, ErrUnknownStudent) {
		t.Errorf("unknown student: got %v", err)
	}
	if err := sess.SetOne("XX0000", "961222104001", true); !errors.Is(err, ErrUnknownCourse) {
		t.Errorf("unknown course: got %v", err)
	}
	if _, err := sess.Finalize("XX0000"); !errors.Is(err, ErrUnknownCourse) {
		t.Errorf("finalize unknown course: got %v", err)
	}
}

func TestSubmitCourseClosesOnlyThatCourse(t *testing.T) {
	svc, store := testFixture()
	sess, err := svc.OpenSession(context.Background(), sessionQuery())
	if err != nil {
		t.Fatal(err)
	}

	if err := sess.SetOne("CS3301", "961222104003", false); err != nil {
		t.Fatal(err)
	}
	id, err := svc.SubmitCourse(context.Background(), sess, "CS3301")
	if err != nil {
		t.Fatal(err)
	}
	if len(store.records) != 1 || store.records[0].ID != id {
		t.Fatalf("stored records = %d", len(store.records))
	}

	record := store.records[0]
	if record.Exam.CourseCode != "CS3301" || record.Exam.Date != "2025-11-10" || record.Exam.Session != "FN" {
		t.Errorf("exam snapshot = %+v", record.Exam)
	}
	if len(record.Entries) != 2 {
		t.Errorf("entries = %d, want 2 present students", len(record.Entries))
	}
	for _, e := range record.Entries {
		if e.Status != model.StatusPresent {
			t.Errorf("entry %s status = %s, want PRESENT", e.RegNo, e.Status)
		}
	}

	// The submitted course cannot be resubmitted in this session.
	if _, err := svc.SubmitCourse(context.Background(), sess, "CS3301"); !errors.Is(err, ErrUnknownCourse) {
		t.Errorf("resubmit: got %v, want ErrUnknownCourse", err)
	}
	// The other course is still open.
	if got := len(sess.OpenExams()); got != 1 {
		t.Errorf("open exams after submit = %d, want 1", got)
	}
	if _, err := svc.SubmitCourse(context.Background(), sess, "CS3351"); err != nil {
		t.Errorf("submitting the remaining course: %v", err)
	}
}

func TestOpenSessionNoExams(t *testing.T) {
	svc, _ := testFixture()
	q := sessionQuery()
	q.Date = "2025-12-01"

	if _, err := svc.OpenSession(context.Background(), q); !errors.Is(err, ErrNoExams) {
		t.Errorf("got %v, want ErrNoExams", err)
	}
}

func TestOpenSessionInvalidSemester(t *testing.T) {
	svc, _ := testFixture()

	// The timetable row itself carries "IX" so the exam lookup matches it
	// but cohort inference must still fail.
	examService := svc.exams
	examService.repo.(*fakeExamStore).exams[0].Semester = "IX"
	q := sessionQuery()
	q.Semester = "IX"

	if _, err := svc.OpenSession(context.Background(), q); !errors.Is(err, batch.ErrInvalidSemester) {
		t.Errorf("got %v, want ErrInvalidSemester", err)
	}
}

func TestOpenSessionNoStudentsIncludesCohort(t *testing.T) {
	svc, _ := testFixture()

	// Semester VII maps to the 2022-2025 cohort, which has no roster.
	examService := svc.exams
	examService.repo.(*fakeExamStore).exams[0].Semester = "VII"
	q := sessionQuery()
	q.Semester = "VII"

	_, err := svc.OpenSession(context.Background(), q)
	var noStudents *NoStudentsError
	if !errors.As(err, &noStudents) {
		t.Fatalf("got %v, want NoStudentsError", err)
	}
	if noStudents.Batch != "2022-2025" {
		t.Errorf("error cohort = %q, want 2022-2025", noStudents.Batch)
	}
}
