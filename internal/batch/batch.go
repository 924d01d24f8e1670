// Package batch derives the admission cohort a semester's exam belongs to.
//
// A 4-year program admits one cohort per year and runs two semesters per
// academic year. Knowing how many full years into the program a semester
// sits lets the admission year be back-computed from the exam's calendar
// year, so callers never have to supply the batch explicitly.
package batch

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSemester is returned for any semester label outside I..VIII.
var ErrInvalidSemester = errors.New("invalid semester")

// semesterOrdinals maps the Roman semester labels to their ordinal.
var semesterOrdinals = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4,
	"V": 5, "VI": 6, "VII": 7, "VIII": 8,
}

// Ordinal converts a Roman semester label to its 1-based ordinal.
func Ordinal(semester string) (int, error) {
	n, ok := semesterOrdinals[semester]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSemester, semester)
	}
	return n, nil
}

// Infer maps a semester label and an exam date to the cohort label
// "startYear-(startYear+3)". Semesters 1-2 are zero years into the
// program, 3-4 one year, 5-6 two, 7-8 three.
//
// No calendar-consistency check is performed: an exam dated far outside
// the nominal window for its semester still yields a (wrong) label
// silently.
func Infer(semester string, examDate time.Time) (string, error) {
	n, err := Ordinal(semester)
	if err != nil {
		return "", err
	}

	yearsPassed := (n+1)/2 - 1
	startYear := examDate.Year() - yearsPassed

	return fmt.Sprintf("%d-%d", startYear, startYear+3), nil
}
