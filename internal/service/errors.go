package service

import (
	"errors"
	"fmt"
)

// Expected empty-result conditions. These surface to the operator as a
// plain message, not as a server fault.
var (
	ErrNoExams  = errors.New("no exams found for these criteria")
	ErrNoPapers = errors.New("no papers found for given criteria")
)

// ErrInvalidDate is returned for a date that does not parse as
// YYYY-MM-DD. Rejected before any store access.
var ErrInvalidDate = errors.New("invalid date")

// NoStudentsError reports an empty roster lookup. It carries the inferred
// cohort label so the operator can see which batch was searched.
type NoStudentsError struct {
	Batch    string
	DeptCode string
}

func (e *NoStudentsError) Error() string {
	return fmt.Sprintf("no students found for batch %s in department %s", e.Batch, e.DeptCode)
}
