package model

// ExportStudent is one student on the registration form.
type ExportStudent struct {
	RegNo string `json:"regNo" binding:"required"`
	Name  string `json:"name" binding:"required"`
}

// ExportPaper is one selected paper on the registration form. Fee is
// optional; when present it is printed next to the paper line.
type ExportPaper struct {
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	Fee        int    `json:"fee"`
}

// ExportRequest is the POST /api/exams/export payload. The renderer emits
// one page per student listing the selected papers and the total fee.
type ExportRequest struct {
	Students    []ExportStudent `json:"students" binding:"required,dive"`
	Papers      []ExportPaper   `json:"papers"`
	TotalAmount int             `json:"totalAmount"`
	Semester    string          `json:"semester"`
	Regulation  string          `json:"regulation"`
	ProgramCode string          `json:"programCode"`
}
