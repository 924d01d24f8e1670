package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus marks a student's presence in one exam.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusAbsent  AttendanceStatus = "ABSENT"
)

// ExamDetails is the snapshot of the exam an attendance record was taken
// for. Stored denormalized so the record stays readable even if the
// timetable is re-imported later.
type ExamDetails struct {
	Date       string `json:"date" binding:"required"`
	Session    string `json:"session" binding:"required,oneof=FN AN"`
	CourseCode string `json:"courseCode" binding:"required"`
	CourseName string `json:"courseName"`
	Semester   string `json:"semester" binding:"required"`
	DeptCode   string `json:"deptCode" binding:"required"`
	Regulation string `json:"regulation" binding:"required"`
}

// AttendanceEntry is one student's row in an attendance record.
type AttendanceEntry struct {
	RegNo  string           `json:"regNo"`
	Status AttendanceStatus `json:"status"`
}

// AttendanceRecord is an append-only log of one submission. Never updated
// after creation.
type AttendanceRecord struct {
	ID        uuid.UUID         `json:"id"`
	Exam      ExamDetails       `json:"examDetails"`
	Entries   []AttendanceEntry `json:"entries"`
	CreatedAt time.Time         `json:"createdAt"`
}

// SubmitAttendanceRequest is the POST /api/attendance payload. Only the
// listed register numbers are persisted, all marked PRESENT; anyone not
// listed is implicitly absent.
type SubmitAttendanceRequest struct {
	ExamDetails    ExamDetails `json:"examDetails" binding:"required"`
	AttendanceList []string    `json:"attendanceList"`
}
