package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =============== ENUMS =============== */

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
)

const (
	MethodCash         = "cash"
	MethodBankTransfer = "bank-transfer"
	MethodCheque       = "cheque"
	MethodOnline       = "online"
)

func IsValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheque, MethodOnline:
		return true
	}
	return false
}

/* =============== MODEL =============== */

// PaymentModel is one salary disbursement. The compound unique index on
// (employee, month_no, year) is the storage-layer guard for the locked
// month rule: the application pre-check only exists for a friendlier
// error message.
type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	PaymentEmployeeID uuid.UUID `gorm:"column:payment_employee_id;type:uuid;not null;uniqueIndex:uq_payments_employee_period" json:"payment_employee_id"`

	// Canonical month name ("January".."December") plus its calendar
	// index. Both are written together from one normalization point;
	// the index carries the unique constraint and the history sort.
	PaymentMonth   string `gorm:"column:payment_month;type:varchar(12);not null" json:"payment_month"`
	PaymentMonthNo int    `gorm:"column:payment_month_no;type:smallint;not null;uniqueIndex:uq_payments_employee_period" json:"payment_month_no"`
	PaymentYear    int    `gorm:"column:payment_year;type:smallint;not null;uniqueIndex:uq_payments_employee_period" json:"payment_year"`

	PaymentAmount     float64 `gorm:"column:payment_amount;type:numeric(14,2);not null" json:"payment_amount"`
	PaymentBonus      float64 `gorm:"column:payment_bonus;type:numeric(14,2);not null;default:0" json:"payment_bonus"`
	PaymentDeductions float64 `gorm:"column:payment_deductions;type:numeric(14,2);not null;default:0" json:"payment_deductions"`

	// Derived: amount + bonus - deductions. Never taken from a caller.
	PaymentNetSalary float64 `gorm:"column:payment_net_salary;type:numeric(14,2);not null" json:"payment_net_salary"`

	PaymentMethod string `gorm:"column:payment_method;type:varchar(20);not null;default:bank-transfer" json:"payment_method"`
	PaymentStatus string `gorm:"column:payment_status;type:varchar(10);not null;default:paid" json:"payment_status"`

	PaymentTransactionID *string `gorm:"column:payment_transaction_id;type:varchar(120)" json:"payment_transaction_id,omitempty"`
	PaymentNotes         *string `gorm:"column:payment_notes;type:text" json:"payment_notes,omitempty"`

	// Written asynchronously by the payslip worker (field-scoped update,
	// never a whole-row save).
	PaymentPayslipGenerated bool    `gorm:"column:payment_payslip_generated;not null;default:false" json:"payment_payslip_generated"`
	PaymentPayslipURL       *string `gorm:"column:payment_payslip_url;type:text" json:"payment_payslip_url,omitempty"`

	PaymentProcessedBy *uuid.UUID `gorm:"column:payment_processed_by;type:uuid" json:"payment_processed_by,omitempty"`

	PaymentDate      time.Time `gorm:"column:payment_date;not null" json:"payment_date"`
	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	return nil
}
