// internals/features/hr/payments/service/payslip_renderer.go
package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	empModel "workdesk_backend/internals/features/hr/employees/model"
	m "workdesk_backend/internals/features/hr/payments/model"
)

// PayslipData is a fully resolved, immutable snapshot of one payment
// plus its employee. The renderer never touches live records.
type PayslipData struct {
	EmployeeName        string
	EmployeeEmail       string
	EmployeeDesignation string
	EmployeeDepartment  string

	Month string
	Year  int

	PaymentDate   time.Time
	Method        string
	TransactionID string

	Amount     float64
	Bonus      float64
	Deductions float64
	NetSalary  float64

	Notes string
}

func BuildPayslipData(rec *m.PaymentModel, emp *empModel.EmployeeModel) PayslipData {
	d := PayslipData{
		EmployeeName:        emp.EmployeeName,
		EmployeeEmail:       emp.EmployeeEmail,
		EmployeeDesignation: emp.EmployeeDesignation,
		EmployeeDepartment:  emp.EmployeeDepartment,
		Month:               rec.PaymentMonth,
		Year:                rec.PaymentYear,
		PaymentDate:         rec.PaymentDate,
		Method:              rec.PaymentMethod,
		Amount:              rec.PaymentAmount,
		Bonus:               rec.PaymentBonus,
		Deductions:          rec.PaymentDeductions,
		NetSalary:           rec.PaymentNetSalary,
	}
	if rec.PaymentTransactionID != nil {
		d.TransactionID = *rec.PaymentTransactionID
	}
	if rec.PaymentNotes != nil {
		d.Notes = *rec.PaymentNotes
	}
	return d
}

// RenderPayslip produces the PDF bytes for one snapshot. Pure: same
// input, same logical document; the caller persists the reference.
func RenderPayslip(d PayslipData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %d", d.Month, d.Year), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYSLIP")
	pdf.Ln(12)

	// Identity block
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, d.EmployeeName)
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, d.EmployeeEmail)
	pdf.Ln(5)
	if d.EmployeeDesignation != "" || d.EmployeeDepartment != "" {
		pdf.Cell(0, 5, fmt.Sprintf("%s, %s", d.EmployeeDesignation, d.EmployeeDepartment))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Period & payment metadata
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Period: %s %d", d.Month, d.Year))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Payment date: %s", d.PaymentDate.Format("2 January 2006")))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Method: %s", d.Method))
	pdf.Ln(5)
	if d.TransactionID != "" {
		pdf.Cell(0, 5, fmt.Sprintf("Transaction: %s", d.TransactionID))
		pdf.Ln(5)
	}
	pdf.Ln(6)

	// Breakdown
	line := func(label string, value float64) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(120, 7, label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", value), "B", 1, "R", false, 0, "")
	}
	line("Basic salary", d.Amount)
	line("Bonus", d.Bonus)
	line("Deductions", -d.Deductions)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, "Net salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", d.NetSalary), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	if d.Notes != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, "Notes: "+d.Notes, "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetY(-20)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Cell(0, 5, fmt.Sprintf("Generated at %s", time.Now().UTC().Format(time.RFC3339)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
