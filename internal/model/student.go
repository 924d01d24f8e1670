package model

// Student is one roster member. Students are keyed by the natural triple
// (deptCode, batch, regNo); the register number alone is only unique within
// a department and cohort.
type Student struct {
	RegNo    string `json:"regNo"`
	Name     string `json:"name"`
	Batch    string `json:"batch"`
	DeptCode string `json:"deptCode"`
}
