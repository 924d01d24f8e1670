package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/ssce/examcell-backend/internal/config"
	"github.com/ssce/examcell-backend/internal/model"
	"github.com/ssce/examcell-backend/internal/repository"
	"github.com/ssce/examcell-backend/internal/service"
	"github.com/ssce/examcell-backend/internal/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Setup()
	os.Exit(m.Run())
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

type fakePaperStore struct {
	papers []model.Paper
}

func (f *fakePaperStore) ListPapers(_ context.Context, _, _, _ string) ([]model.Paper, error) {
	return f.papers, nil
}

type fakeExamStore struct {
	exams []model.TimetableEntry
}

func (f *fakeExamStore) ListExams(_ context.Context, filter repository.ExamFilter) ([]model.TimetableEntry, error) {
	var out []model.TimetableEntry
	for _, e := range f.exams {
		if e.Date.Equal(filter.Date) && string(e.Session) == filter.Session && e.DeptCode == filter.DeptCode {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAttendanceStore struct {
	duplicate bool
	records   []*model.AttendanceRecord
}

func (f *fakeAttendanceStore) Create(_ context.Context, record *model.AttendanceRecord) error {
	if f.duplicate {
		return repository.ErrDuplicateAttendance
	}
	f.records = append(f.records, record)
	return nil
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestStudentHandlerListByBatchDept(t *testing.T) {
	store := &fakeRosterStore{students: []model.Student{
		{RegNo: "961222104001", Name: "ANITHA R", Batch: "2024-2027", DeptCode: "104"},
		{RegNo: "961222104002", Name: "KUMAR S", Batch: "2024-2027", DeptCode: "104"},
	}}
	h := NewStudentHandler(service.NewStudentService(store, nil, 0, zerolog.Nop()))

	r := gin.New()
	r.GET("/api/students/:batch/:deptCode", h.ListByBatchDept)

	w := doRequest(r, http.MethodGet, "/api/students/2024-2027/104", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	if body["success"] != true {
		t.Errorf("body = %v", body)
	}
	if list, ok := body["list"].([]interface{}); !ok || len(list) != 2 {
		t.Errorf("list = %v, want 2 students", body["list"])
	}

	// An empty roster is still success with an empty list.
	w = doRequest(r, http.MethodGet, "/api/students/2020-2023/104", "")
	body = decode(t, w)
	if w.Code != http.StatusOK || body["success"] != true {
		t.Errorf("empty roster: status %d body %v", w.Code, body)
	}
	if list, ok := body["list"].([]interface{}); !ok || len(list) != 0 {
		t.Errorf("empty roster list = %v, want []", body["list"])
	}
}

func TestSyllabusHandlerNoPapers(t *testing.T) {
	h := NewSyllabusHandler(service.NewSyllabusService(&fakePaperStore{}, nil, 0, zerolog.Nop()))

	r := gin.New()
	r.GET("/api/syllabus/:regulation/:deptCode/:semester", h.ListPapers)

	w := doRequest(r, http.MethodGet, "/api/syllabus/2021/104/III", "")
	body := decode(t, w)
	if w.Code != http.StatusOK || body["success"] != false {
		t.Errorf("status %d body %v, want 200 with success:false", w.Code, body)
	}
	if body["message"] != "No papers found for given criteria." {
		t.Errorf("message = %v", body["message"])
	}
}

func TestExamHandlerListScheduled(t *testing.T) {
	store := &fakeExamStore{exams: []model.TimetableEntry{{
		Date: time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC), Session: "FN",
		DeptCode: "104", Semester: "III", Regulation: "2025",
		CourseCode: "CS3301", CourseName: "DATA STRUCTURES",
	}}}
	h := NewExamHandler(service.NewExamService(store, nil, 0, zerolog.Nop()))

	r := gin.New()
	r.GET("/api/exams", h.ListScheduled)

	w := doRequest(r, http.MethodGet, "/api/exams?date=2025-11-10&session=FN&deptCode=104", "")
	body := decode(t, w)
	if w.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("status %d body %v", w.Code, body)
	}
	if exams, ok := body["exams"].([]interface{}); !ok || len(exams) != 1 {
		t.Errorf("exams = %v, want 1", body["exams"])
	}

	// No match is a message, not a fault.
	w = doRequest(r, http.MethodGet, "/api/exams?date=2025-12-01&session=FN&deptCode=104", "")
	body = decode(t, w)
	if w.Code != http.StatusOK || body["success"] != false {
		t.Errorf("no exams: status %d body %v", w.Code, body)
	}

	// An unparseable date is the caller's fault.
	w = doRequest(r, http.MethodGet, "/api/exams?date=soon&session=FN&deptCode=104", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date: status = %d, want 400", w.Code)
	}

	// A missing mandatory parameter fails binding.
	w = doRequest(r, http.MethodGet, "/api/exams?date=2025-11-10", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing params: status = %d, want 400", w.Code)
	}
}

func attendancePayload(list string) string {
	return `{"examDetails":{"date":"2025-11-10","session":"FN","courseCode":"CS3301",
		"courseName":"DATA STRUCTURES","semester":"III","deptCode":"104","regulation":"2025"},
		"attendanceList":` + list + `}`
}

func attendanceRouter(store *fakeAttendanceStore) *gin.Engine {
	log := zerolog.Nop()
	examService := service.NewExamService(&fakeExamStore{}, nil, 0, log)
	studentService := service.NewStudentService(&fakeRosterStore{}, nil, 0, log)
	h := NewAttendanceHandler(service.NewAttendanceService(examService, studentService, store, log))

	r := gin.New()
	r.POST("/api/attendance", h.Submit)
	return r
}

func TestAttendanceHandlerSubmit(t *testing.T) {
	store := &fakeAttendanceStore{}
	r := attendanceRouter(store)

	w := doRequest(r, http.MethodPost, "/api/attendance", attendancePayload(`["961222104001","961222104002"]`))
	body := decode(t, w)
	if w.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("status %d body %v", w.Code, body)
	}
	if body["message"] != "Attendance submitted successfully." {
		t.Errorf("message = %v", body["message"])
	}
	if len(store.records) != 1 || len(store.records[0].Entries) != 2 {
		t.Fatalf("stored %d records", len(store.records))
	}
	for _, e := range store.records[0].Entries {
		if e.Status != model.StatusPresent {
			t.Errorf("entry %s status = %s", e.RegNo, e.Status)
		}
	}
}

func TestAttendanceHandlerRejectsBadPayload(t *testing.T) {
	store := &fakeAttendanceStore{}
	r := attendanceRouter(store)

	// A payload without attendanceList must be rejected before any store
	// mutation; an empty list is a valid all-absent submission.
	cases := map[string]string{
		"missing attendanceList": `{"examDetails":{"date":"2025-11-10","session":"FN",
			"courseCode":"CS3301","semester":"III","deptCode":"104","regulation":"2025"}}`,
		"missing examDetails": `{"attendanceList":["961222104001"]}`,
		"malformed JSON":      `{"examDetails":`,
	}
	for name, payload := range cases {
		w := doRequest(r, http.MethodPost, "/api/attendance", payload)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, w.Code)
		}
	}
	if len(store.records) != 0 {
		t.Errorf("store mutated by rejected payloads: %d records", len(store.records))
	}

	w := doRequest(r, http.MethodPost, "/api/attendance", attendancePayload(`[]`))
	if w.Code != http.StatusOK {
		t.Errorf("empty list: status = %d, want 200", w.Code)
	}
}

func TestAttendanceHandlerDuplicate(t *testing.T) {
	r := attendanceRouter(&fakeAttendanceStore{duplicate: true})

	w := doRequest(r, http.MethodPost, "/api/attendance", attendancePayload(`["961222104001"]`))
	body := decode(t, w)
	if w.Code != http.StatusConflict || body["success"] != false {
		t.Errorf("status %d body %v, want 409 with success:false", w.Code, body)
	}
}

func TestExportHandlerRejectsEmptySelection(t *testing.T) {
	log := zerolog.Nop()
	h := NewExportHandler(nil, service.NewRegistrationService(150, log), log)

	r := gin.New()
	r.POST("/api/exams/export", h.RegistrationForms)

	for name, payload := range map[string]string{
		"no students field": `{"papers":[]}`,
		"empty students":    `{"students":[]}`,
	} {
		w := doRequest(r, http.MethodPost, "/api/exams/export", payload)
		body := decode(t, w)
		if w.Code != http.StatusBadRequest || body["success"] != false {
			t.Errorf("%s: status %d body %v, want 400", name, w.Code, body)
		}
		if body["message"] != "No students selected" {
			t.Errorf("%s: message = %v", name, body["message"])
		}
	}
}

func TestMetaHandlerCatalog(t *testing.T) {
	cfg := &config.Config{
		Departments: []config.Department{{Code: "104", Name: "CSE"}},
		Regulations: []string{"2017", "2021", "2025"},
		Semesters:   []string{"I", "II", "III"},
		PaperFee:    150,
	}
	h := NewMetaHandler(cfg)

	r := gin.New()
	r.GET("/api/meta/catalog", h.Catalog)

	w := doRequest(r, http.MethodGet, "/api/meta/catalog", "")
	body := decode(t, w)
	if w.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("status %d body %v", w.Code, body)
	}
	if body["paperFee"] != float64(150) {
		t.Errorf("paperFee = %v", body["paperFee"])
	}
	if regs, ok := body["regulations"].([]interface{}); !ok || len(regs) != 3 {
		t.Errorf("regulations = %v", body["regulations"])
	}
}
