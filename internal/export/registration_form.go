// Package export renders examination-registration forms as PDF, one page
// per selected student.
package export

import (
	"bytes"
	"fmt"

	"github.com/signintech/gopdf"
	"github.com/ssce/examcell-backend/internal/model"
)

const (
	fontFamily = "form"

	pageWidth = 595.28 // A4 portrait, points
	margin    = 40.0
	footerY   = 780.0
)

// Renderer produces registration-form PDFs. The TTF it is pointed at is
// loaded per document; gopdf ships no built-in fonts.
type Renderer struct {
	fontPath string
}

// NewRenderer creates a Renderer using the font at fontPath.
func NewRenderer(fontPath string) *Renderer {
	return &Renderer{fontPath: fontPath}
}

// RegistrationForms renders one page per student, each listing the
// selected papers and the total fee.
func (r *Renderer) RegistrationForms(req model.ExportRequest) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	if err := pdf.AddTTFFont(fontFamily, r.fontPath); err != nil {
		return nil, fmt.Errorf("load font %s: %w", r.fontPath, err)
	}

	for _, stu := range req.Students {
		if err := studentPage(pdf, req, stu); err != nil {
			return nil, fmt.Errorf("render page for %s: %w", stu.RegNo, err)
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func studentPage(pdf *gopdf.GoPdf, req model.ExportRequest, stu model.ExportStudent) error {
	pdf.AddPage()

	if err := centerLine(pdf, 16, 50, "SREE SOWDAMBIGA COLLEGE OF ENGINEERING"); err != nil {
		return err
	}
	if err := centerLine(pdf, 12, 72, "(Autonomous)"); err != nil {
		return err
	}
	if err := centerLine(pdf, 12, 88, "EXAMINATION REGISTRATION FORM"); err != nil {
		return err
	}

	meta := []string{
		fmt.Sprintf("Program Code : %s", orDash(req.ProgramCode)),
		fmt.Sprintf("Regulation   : %s", orDash(req.Regulation)),
		fmt.Sprintf("Semester     : %s", orDash(req.Semester)),
		"",
		fmt.Sprintf("Student Name : %s", stu.Name),
		fmt.Sprintf("Register No  : %s", stu.RegNo),
	}
	y := 125.0
	for _, line := range meta {
		if line != "" {
			if err := leftLine(pdf, 11, y, line); err != nil {
				return err
			}
		}
		y += 16
	}

	y += 10
	if err := leftLine(pdf, 11, y, "Selected Papers:"); err != nil {
		return err
	}
	y += 18

	if len(req.Papers) == 0 {
		if err := leftLine(pdf, 11, y, "No papers selected."); err != nil {
			return err
		}
		y += 16
	}
	for i, p := range req.Papers {
		line := fmt.Sprintf("%d. %s - %s", i+1, p.CourseCode, p.CourseName)
		if p.Fee > 0 {
			line += fmt.Sprintf("  Rs.%d", p.Fee)
		}
		if err := leftLine(pdf, 11, y, line); err != nil {
			return err
		}
		y += 16
	}

	y += 14
	if err := rightLine(pdf, 12, y, fmt.Sprintf("Total Amount: Rs.%d", req.TotalAmount)); err != nil {
		return err
	}

	return rightLine(pdf, 11, footerY, "Controller of Examinations")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func centerLine(pdf *gopdf.GoPdf, size float64, y float64, text string) error {
	if err := pdf.SetFont(fontFamily, "", size); err != nil {
		return err
	}
	width, err := pdf.MeasureTextWidth(text)
	if err != nil {
		return err
	}
	pdf.SetY(y)
	pdf.SetX((pageWidth - width) / 2)
	return pdf.Cell(nil, text)
}

func leftLine(pdf *gopdf.GoPdf, size float64, y float64, text string) error {
	if err := pdf.SetFont(fontFamily, "", size); err != nil {
		return err
	}
	pdf.SetY(y)
	pdf.SetX(margin)
	return pdf.Cell(nil, text)
}

func rightLine(pdf *gopdf.GoPdf, size float64, y float64, text string) error {
	if err := pdf.SetFont(fontFamily, "", size); err != nil {
		return err
	}
	width, err := pdf.MeasureTextWidth(text)
	if err != nil {
		return err
	}
	pdf.SetY(y)
	pdf.SetX(pageWidth - margin - width)
	return pdf.Cell(nil, text)
}
