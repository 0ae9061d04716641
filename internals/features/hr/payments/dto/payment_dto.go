// internals/features/hr/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "workdesk_backend/internals/features/hr/payments/model"
)

/* =============== REQUESTS =============== */

// Create
type CreatePaymentRequest struct {
	EmployeeID *uuid.UUID `json:"employee" validate:"omitempty"`

	Month string `json:"month" validate:"omitempty"`
	Year  int    `json:"year"  validate:"omitempty"`

	// Omitted amount falls back to the employee's configured salary.
	Amount     *float64 `json:"amount"     validate:"omitempty"`
	Bonus      *float64 `json:"bonus"      validate:"omitempty,gte=0"`
	Deductions *float64 `json:"deductions" validate:"omitempty,gte=0"`

	PaymentMethod *string `json:"payment_method" validate:"omitempty,oneof=cash bank-transfer cheque online"`
	TransactionID *string `json:"transaction_id" validate:"omitempty,max=120"`
	Notes         *string `json:"notes"          validate:"omitempty"`
}

// Update (partial). Identity fields (employee/month/year) are only
// accepted while the record is not yet paid.
type UpdatePaymentRequest struct {
	EmployeeID *uuid.UUID `json:"employee" validate:"omitempty"`
	Month      *string    `json:"month"       validate:"omitempty"`
	Year       *int       `json:"year"        validate:"omitempty"`

	Amount     *float64 `json:"amount"     validate:"omitempty"`
	Bonus      *float64 `json:"bonus"      validate:"omitempty,gte=0"`
	Deductions *float64 `json:"deductions" validate:"omitempty,gte=0"`

	PaymentMethod *string `json:"payment_method" validate:"omitempty,oneof=cash bank-transfer cheque online"`
	TransactionID *string `json:"transaction_id" validate:"omitempty,max=120"`
	Notes         *string `json:"notes"          validate:"omitempty"`
}

// HasIdentityChange reports whether the patch touches the locked
// (employee, month, year) triple, even as a same-value write.
func (r UpdatePaymentRequest) HasIdentityChange() bool {
	return r.EmployeeID != nil || r.Month != nil || r.Year != nil
}

// List / query params
type ListPaymentQuery struct {
	EmployeeID *uuid.UUID `query:"employee" validate:"omitempty"`
	Month      *string    `query:"month"    validate:"omitempty"`
	Year       *int       `query:"year"     validate:"omitempty,gte=2000,lte=2100"`
}

/* =============== RESPONSES =============== */

type PaymentResponse struct {
	PaymentID uuid.UUID `json:"payment_id"`

	PaymentEmployeeID uuid.UUID `json:"payment_employee_id"`
	PaymentMonth      string    `json:"payment_month"`
	PaymentYear       int       `json:"payment_year"`

	PaymentAmount     float64 `json:"payment_amount"`
	PaymentBonus      float64 `json:"payment_bonus"`
	PaymentDeductions float64 `json:"payment_deductions"`
	PaymentNetSalary  float64 `json:"payment_net_salary"`

	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`

	PaymentTransactionID *string `json:"payment_transaction_id,omitempty"`
	PaymentNotes         *string `json:"payment_notes,omitempty"`

	PaymentPayslipGenerated bool    `json:"payment_payslip_generated"`
	PaymentPayslipURL       *string `json:"payment_payslip_url,omitempty"`

	PaymentProcessedBy *uuid.UUID `json:"payment_processed_by,omitempty"`

	PaymentDate      time.Time `json:"payment_date"`
	PaymentCreatedAt time.Time `json:"payment_created_at"`
	PaymentUpdatedAt time.Time `json:"payment_updated_at"`
}

func FromModel(mo m.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:               mo.PaymentID,
		PaymentEmployeeID:       mo.PaymentEmployeeID,
		PaymentMonth:            mo.PaymentMonth,
		PaymentYear:             mo.PaymentYear,
		PaymentAmount:           mo.PaymentAmount,
		PaymentBonus:            mo.PaymentBonus,
		PaymentDeductions:       mo.PaymentDeductions,
		PaymentNetSalary:        mo.PaymentNetSalary,
		PaymentMethod:           mo.PaymentMethod,
		PaymentStatus:           mo.PaymentStatus,
		PaymentTransactionID:    mo.PaymentTransactionID,
		PaymentNotes:            mo.PaymentNotes,
		PaymentPayslipGenerated: mo.PaymentPayslipGenerated,
		PaymentPayslipURL:       mo.PaymentPayslipURL,
		PaymentProcessedBy:      mo.PaymentProcessedBy,
		PaymentDate:             mo.PaymentDate,
		PaymentCreatedAt:        mo.PaymentCreatedAt,
		PaymentUpdatedAt:        mo.PaymentUpdatedAt,
	}
}

func FromModels(list []m.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, len(list))
	for i, mo := range list {
		out[i] = FromModel(mo)
	}
	return out
}
