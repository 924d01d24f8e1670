// Package importer reconciles spreadsheet exports from the examination
// cell into the database. Rows arrive in one of three shapes (roster,
// syllabus, timetable) whose column headers have drifted across years;
// the normalizer maps the historical variants onto canonical records and
// the reconciler upserts them by natural key.
package importer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ssce/examcell-backend/internal/model"
)

// Kind classifies the shape of a source file.
type Kind string

const (
	KindRoster    Kind = "roster"
	KindSyllabus  Kind = "syllabus"
	KindTimetable Kind = "timetable"
)

// Row is one spreadsheet row keyed by header cell.
type Row map[string]string

var (
	// ErrMissingField marks a row lacking a required column. The row is
	// skipped, not fatal to the file.
	ErrMissingField = errors.New("missing required field")
	// ErrMalformedDate marks a row whose date cell parses under neither
	// accepted encoding. The row is skipped, not fatal to the file.
	ErrMalformedDate = errors.New("malformed date")
)

// Classify derives the file's shape from its name. Anything that is not
// recognizably a syllabus or timetable export is treated as a roster,
// matching how the examination cell names its files.
func Classify(fileName string) Kind {
	lower := strings.ToLower(fileName)
	switch {
	case strings.Contains(lower, "syllabus"):
		return KindSyllabus
	case strings.Contains(lower, "timetable"):
		return KindTimetable
	default:
		return KindRoster
	}
}

// FileMeta carries per-file metadata declared alongside an import.
// Filename inference (MetaFromFileName) is the fallback when a field is
// left empty; either way an undeterminable value ends up "unknown".
type FileMeta struct {
	Regulation string
	Batch      string
}

var batchPattern = regexp.MustCompile(`\d{4}-\d{4}`)

// MetaFromFileName guesses regulation and batch from naming conventions:
// a "2021"/"2025" substring names the regulation, a year-year pattern the
// cohort. Fragile by nature, which is why explicitly declared FileMeta
// takes precedence.
func MetaFromFileName(fileName string) FileMeta {
	lower := strings.ToLower(fileName)

	meta := FileMeta{Regulation: "unknown", Batch: "unknown"}
	switch {
	case strings.Contains(lower, "2021"):
		meta.Regulation = "2021"
	case strings.Contains(lower, "2025"):
		meta.Regulation = "2025"
	}
	if m := batchPattern.FindString(fileName); m != "" {
		meta.Batch = m
	}
	return meta
}

// merged returns meta with empty fields filled from filename inference.
func (m FileMeta) merged(fileName string) FileMeta {
	inferred := MetaFromFileName(fileName)
	if m.Regulation == "" {
		m.Regulation = inferred.Regulation
	}
	if m.Batch == "" {
		m.Batch = inferred.Batch
	}
	return m
}

// ─── Column aliases ─────────────────────────────────────────────────────
//
// Each canonical field accepts an ordered list of historical header
// spellings; the first non-empty match wins.

var (
	rosterRegNoAliases = []string{"Register Number", "Reg No", "Reg Number"}
	rosterNameAliases  = []string{"Name of the Student", "Student Name", "Name"}
	rosterDeptAliases  = []string{"Program Code", "Dept"}

	syllabusSemesterAliases   = []string{"SEMESTER", "Semester"}
	syllabusDeptAliases       = []string{"PROGRAM CODE", "Program Code"}
	syllabusCourseCodeAliases = []string{"SUBJECT CODE", "Course Code"}
	syllabusCourseNameAliases = []string{"SUBJECT NAME", "Course Name"}

	timetableSemesterAliases   = []string{"Semester"}
	timetableDeptAliases       = []string{"Program Code"}
	timetableCourseCodeAliases = []string{"Sub-Code"}
	timetableCourseNameAliases = []string{"Subject Name"}
	timetableDateAliases       = []string{"Date"}
	timetableSessionAliases    = []string{"Session"}
)

// pick returns the first non-empty value among the aliased columns.
func pick(row Row, aliases []string) string {
	for _, a := range aliases {
		if v := strings.TrimSpace(row[a]); v != "" {
			return v
		}
	}
	return ""
}

func require(row Row, aliases []string, field string) (string, error) {
	v := pick(row, aliases)
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return v, nil
}

// NormalizeRoster maps one roster row onto a Student. The cohort comes
// from the file's metadata, not the row.
func NormalizeRoster(row Row, meta FileMeta) (model.Student, error) {
	regNo, err := require(row, rosterRegNoAliases, "regNo")
	if err != nil {
		return model.Student{}, err
	}
	name, err := require(row, rosterNameAliases, "name")
	if err != nil {
		return model.Student{}, err
	}

	return model.Student{
		RegNo:    regNo,
		Name:     name,
		Batch:    meta.Batch,
		DeptCode: pick(row, rosterDeptAliases),
	}, nil
}

// NormalizeSyllabus maps one syllabus row onto a SyllabusEntry. The
// regulation comes from the file's metadata, not the row.
func NormalizeSyllabus(row Row, meta FileMeta) (model.SyllabusEntry, error) {
	courseCode, err := require(row, syllabusCourseCodeAliases, "courseCode")
	if err != nil {
		return model.SyllabusEntry{}, err
	}
	courseName, err := require(row, syllabusCourseNameAliases, "courseName")
	if err != nil {
		return model.SyllabusEntry{}, err
	}

	return model.SyllabusEntry{
		Regulation: meta.Regulation,
		DeptCode:   pick(row, syllabusDeptAliases),
		Semester:   pick(row, syllabusSemesterAliases),
		CourseCode: courseCode,
		CourseName: courseName,
	}, nil
}

// NormalizeTimetable maps one timetable row onto a TimetableEntry.
// regulation stamps the entry; the timetable sheets themselves carry no
// regulation column.
func NormalizeTimetable(row Row, regulation string) (model.TimetableEntry, error) {
	courseCode, err := require(row, timetableCourseCodeAliases, "courseCode")
	if err != nil {
		return model.TimetableEntry{}, err
	}
	rawDate, err := require(row, timetableDateAliases, "date")
	if err != nil {
		return model.TimetableEntry{}, err
	}
	date, err := ParseRowDate(rawDate)
	if err != nil {
		return model.TimetableEntry{}, err
	}

	semester := pick(row, timetableSemesterAliases)
	if semester == "" {
		semester = "unknown"
	}
	deptCode := pick(row, timetableDeptAliases)
	if deptCode == "" {
		deptCode = "unknown"
	}

	return model.TimetableEntry{
		Date:       date,
		Session:    model.ExamSession(pick(row, timetableSessionAliases)),
		DeptCode:   deptCode,
		Semester:   semester,
		Regulation: regulation,
		CourseCode: courseCode,
		CourseName: pick(row, timetableCourseNameAliases),
	}, nil
}

// excelEpoch is the zero point of the 1900 date system as spreadsheet
// libraries actually apply it (two days before 1900-01-01, absorbing the
// inherited leap-year bug).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseRowDate decodes the two date encodings seen in timetable sheets:
// a "d-m-yy" hyphenated string (2-digit year <50 means 20xx, else 19xx)
// or a numeric spreadsheet date serial.
func ParseRowDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if serial, err := strconv.Atoi(raw); err == nil {
		if serial <= 0 {
			return time.Time{}, fmt.Errorf("%w: serial %q", ErrMalformedDate, raw)
		}
		return excelEpoch.AddDate(0, 0, serial), nil
	}

	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, raw)
	}

	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, raw)
	}

	switch {
	case year < 50:
		year += 2000
	case year < 100:
		year += 1900
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, raw)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}
