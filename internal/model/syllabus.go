package model

// SyllabusEntry is one paper of a regulation's curriculum.
// Unique per (regulation, deptCode, semester, courseCode).
type SyllabusEntry struct {
	Regulation string `json:"regulation"`
	DeptCode   string `json:"deptCode"`
	Semester   string `json:"semester"`
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
}

// Paper is the lookup-facing projection of a syllabus entry.
type Paper struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
