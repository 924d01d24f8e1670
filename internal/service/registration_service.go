package service

import (
	"github.com/rs/zerolog"
)

// Price computes the exam-registration amount: every selected student
// registers for every selected paper at a flat fee per paper. Zero
// selections on either side price to zero.
func Price(studentCount, paperCount, feePerPaper int) int {
	if studentCount <= 0 || paperCount <= 0 {
		return 0
	}
	return studentCount * paperCount * feePerPaper
}

// RegistrationService prices exam registrations with the configured fee.
type RegistrationService struct {
	feePerPaper int
	log         zerolog.Logger
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(feePerPaper int, log zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		feePerPaper: feePerPaper,
		log:         log.With().Str("component", "registration_service").Logger(),
	}
}

// FeePerPaper returns the configured flat fee.
func (s *RegistrationService) FeePerPaper() int { return s.feePerPaper }

// Quote prices a selection using the configured fee.
func (s *RegistrationService) Quote(studentCount, paperCount int) int {
	return Price(studentCount, paperCount, s.feePerPaper)
}
