package employee

import (
	"context"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// ExportProfilePDF renders a printable summary of the employee's master
// data and streams it to w.
func (s *Service) ExportProfilePDF(ctx context.Context, id string, w io.Writer) error {
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee Profile")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	line := func(format string, args ...any) {
		pdf.Cell(0, 8, fmt.Sprintf(format, args...))
		pdf.Ln(7)
	}

	line("Name: %s", emp.Name)
	line("Employee ID: %s", emp.EmployeeID)
	line("Department: %s", emp.Department)
	line("Designation: %s", emp.Designation)
	line("Date of Birth: %s", emp.DateOfBirth.Format("2006-01-02"))
	line("Joining Date: %s", emp.JoiningDate.Format("2006-01-02"))
	line("Confirmation Date: %s", emp.ConfirmationDate.Format("2006-01-02"))
	if emp.Division != "" {
		line("Division: %s", emp.Division)
	}
	if emp.ContactDetails != nil {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Contact")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)
		if emp.ContactDetails.Email != "" {
			line("Email: %s", emp.ContactDetails.Email)
		}
		if emp.ContactDetails.MobileNo != "" {
			line("Mobile: %s", emp.ContactDetails.MobileNo)
		}
	}
	if len(emp.QualificationDetails) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Qualifications")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)
		for _, q := range emp.QualificationDetails {
			line("%s, %s (%d)", q.Degree, q.University, q.Year)
		}
	}

	return pdf.Output(w)
}
