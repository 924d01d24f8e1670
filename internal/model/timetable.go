package model

import "time"

// ExamSession enumerates the two daily exam slots.
type ExamSession string

const (
	SessionForenoon  ExamSession = "FN"
	SessionAfternoon ExamSession = "AN"
)

// TimetableEntry is one scheduled exam.
// Unique per (date, session, deptCode, courseCode).
type TimetableEntry struct {
	Date       time.Time   `json:"date"`
	Session    ExamSession `json:"session"`
	DeptCode   string      `json:"deptCode"`
	Semester   string      `json:"semester"`
	Regulation string      `json:"regulation"`
	CourseCode string      `json:"courseCode"`
	CourseName string      `json:"courseName"`
}

// ExamInfo is the lookup-facing projection of a timetable entry.
type ExamInfo struct {
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	Semester   string `json:"semester"`
	Regulation string `json:"regulation"`
}

// ListExamsQuery binds the GET /api/exams query string. Semester and
// regulation are optional narrowing filters.
type ListExamsQuery struct {
	Date       string `form:"date" binding:"required"`
	Session    string `form:"session" binding:"required,oneof=FN AN"`
	DeptCode   string `form:"deptCode" binding:"required"`
	Semester   string `form:"semester"`
	Regulation string `form:"regulation"`
}
