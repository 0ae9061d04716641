// internals/features/hr/payments/service/payment_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	empModel "workdesk_backend/internals/features/hr/employees/model"
	"workdesk_backend/internals/features/hr/payments/dto"
	m "workdesk_backend/internals/features/hr/payments/model"
	helper "workdesk_backend/internals/helpers"
	"workdesk_backend/internals/helpers/storage"
)

// PaymentService is the single entry point for creating, mutating and
// reading payment records, and for enforcing the payroll lock. Errors
// are *fiber.Error values so every caller renders the same envelope.
type PaymentService struct {
	DB    *gorm.DB
	Store storage.DocumentStore

	// Optional fire-and-forget payslip scheduler. Nil disables the
	// async path; the on-demand path in Payslip still works.
	Worker *PayslipWorker
}

func NewPaymentService(db *gorm.DB, store storage.DocumentStore) *PaymentService {
	return &PaymentService{DB: db, Store: store}
}

func computeNet(amount, bonus, deductions float64) float64 {
	return amount + bonus - deductions
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func validYear(y int) bool { return y >= 2000 && y <= 2100 }

/* ======================= CREATE ======================= */

// Create validates input in a fixed order, resolves the amount default
// from the employee record, persists the record as paid and schedules
// payslip rendering without blocking the caller.
func (s *PaymentService) Create(ctx context.Context, req dto.CreatePaymentRequest, actingAdmin uuid.UUID) (*m.PaymentModel, error) {
	if req.EmployeeID == nil || *req.EmployeeID == uuid.Nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "employee required")
	}

	month := NormalizeMonth(req.Month)
	if month == "" || req.Year == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "month and year required")
	}
	monthNo := MonthIndex(month)
	if monthNo == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid month")
	}
	if !validYear(req.Year) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid year")
	}

	var emp empModel.EmployeeModel
	if err := s.DB.WithContext(ctx).
		Where("employee_id = ?", *req.EmployeeID).
		First(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "employee not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to resolve employee")
	}

	// Friendly pre-check; the unique index stays authoritative below.
	var existing int64
	if err := s.DB.WithContext(ctx).Model(&m.PaymentModel{}).
		Where("payment_employee_id = ? AND payment_month_no = ? AND payment_year = ?",
			emp.EmployeeID, monthNo, req.Year).
		Count(&existing).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to check period")
	}
	if existing > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "month locked")
	}

	amount := emp.EmployeeSalary
	if req.Amount != nil {
		amount = *req.Amount
	}
	if !validAmount(amount) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid amount")
	}

	bonus := 0.0
	if req.Bonus != nil {
		bonus = *req.Bonus
	}
	deductions := 0.0
	if req.Deductions != nil {
		deductions = *req.Deductions
	}

	method := m.MethodBankTransfer
	if req.PaymentMethod != nil && *req.PaymentMethod != "" {
		if !m.IsValidMethod(*req.PaymentMethod) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid payment method")
		}
		method = *req.PaymentMethod
	}

	rec := &m.PaymentModel{
		PaymentEmployeeID:    emp.EmployeeID,
		PaymentMonth:         month,
		PaymentMonthNo:       monthNo,
		PaymentYear:          req.Year,
		PaymentAmount:        amount,
		PaymentBonus:         bonus,
		PaymentDeductions:    deductions,
		PaymentNetSalary:     computeNet(amount, bonus, deductions),
		PaymentMethod:        method,
		PaymentStatus:        m.StatusPaid,
		PaymentTransactionID: req.TransactionID,
		PaymentNotes:         req.Notes,
		PaymentProcessedBy:   &actingAdmin,
		PaymentDate:          time.Now().UTC(),
	}

	if err := s.DB.WithContext(ctx).Create(rec).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			// Lost the race against a concurrent create for the same
			// triple; same error shape as the pre-check.
			return nil, fiber.NewError(fiber.StatusConflict, "month locked")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to create payment")
	}

	if s.Worker != nil {
		s.Worker.Enqueue(rec.PaymentID)
	}

	return rec, nil
}

/* ======================= UPDATE ======================= */

// Update applies a partial patch. Identity fields are frozen once the
// record is paid, even as a same-value write; netSalary is recomputed
// whenever amount, bonus or deductions appear in the patch.
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePaymentRequest) (*m.PaymentModel, error) {
	var curr m.PaymentModel
	if err := s.DB.WithContext(ctx).Where("payment_id = ?", id).First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "payment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load payment")
	}

	patch := map[string]interface{}{}

	if req.HasIdentityChange() {
		if curr.PaymentStatus == m.StatusPaid {
			return nil, fiber.NewError(fiber.StatusConflict, "month locked")
		}

		newEmployee := curr.PaymentEmployeeID
		if req.EmployeeID != nil {
			if *req.EmployeeID == uuid.Nil {
				return nil, fiber.NewError(fiber.StatusBadRequest, "employee required")
			}
			newEmployee = *req.EmployeeID
		}

		newMonth := curr.PaymentMonth
		if req.Month != nil {
			newMonth = NormalizeMonth(*req.Month)
			if newMonth == "" {
				return nil, fiber.NewError(fiber.StatusBadRequest, "month and year required")
			}
		}
		newMonthNo := MonthIndex(newMonth)
		if newMonthNo == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid month")
		}

		newYear := curr.PaymentYear
		if req.Year != nil {
			newYear = *req.Year
		}
		if !validYear(newYear) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid year")
		}

		if newEmployee != curr.PaymentEmployeeID {
			var count int64
			if err := s.DB.WithContext(ctx).Model(&empModel.EmployeeModel{}).
				Where("employee_id = ?", newEmployee).
				Count(&count).Error; err != nil {
				return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to resolve employee")
			}
			if count == 0 {
				return nil, fiber.NewError(fiber.StatusNotFound, "employee not found")
			}
		}

		var dup int64
		if err := s.DB.WithContext(ctx).Model(&m.PaymentModel{}).
			Where("payment_employee_id = ? AND payment_month_no = ? AND payment_year = ? AND payment_id <> ?",
				newEmployee, newMonthNo, newYear, curr.PaymentID).
			Count(&dup).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to check period")
		}
		if dup > 0 {
			return nil, fiber.NewError(fiber.StatusConflict, "month locked")
		}

		patch["payment_employee_id"] = newEmployee
		patch["payment_month"] = newMonth
		patch["payment_month_no"] = newMonthNo
		patch["payment_year"] = newYear
	}

	if req.Amount != nil || req.Bonus != nil || req.Deductions != nil {
		amount := curr.PaymentAmount
		if req.Amount != nil {
			amount = *req.Amount
		}
		if !validAmount(amount) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid amount")
		}
		bonus := curr.PaymentBonus
		if req.Bonus != nil {
			bonus = *req.Bonus
		}
		deductions := curr.PaymentDeductions
		if req.Deductions != nil {
			deductions = *req.Deductions
		}
		if bonus < 0 || deductions < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "bonus and deductions must not be negative")
		}
		patch["payment_amount"] = amount
		patch["payment_bonus"] = bonus
		patch["payment_deductions"] = deductions
		patch["payment_net_salary"] = computeNet(amount, bonus, deductions)
	}

	if req.PaymentMethod != nil {
		if !m.IsValidMethod(*req.PaymentMethod) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid payment method")
		}
		patch["payment_method"] = *req.PaymentMethod
	}
	if req.TransactionID != nil {
		patch["payment_transaction_id"] = *req.TransactionID
	}
	if req.Notes != nil {
		patch["payment_notes"] = *req.Notes
	}

	if len(patch) == 0 {
		return &curr, nil
	}

	if err := s.DB.WithContext(ctx).Model(&m.PaymentModel{}).
		Where("payment_id = ?", curr.PaymentID).
		Updates(patch).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "month locked")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to update payment")
	}

	var updated m.PaymentModel
	if err := s.DB.WithContext(ctx).Where("payment_id = ?", curr.PaymentID).First(&updated).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to reload payment")
	}
	return &updated, nil
}

/* ======================= DELETE ======================= */

// Delete removes an unpaid record. Paid records are permanent audit
// artifacts; there is no override.
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	var curr m.PaymentModel
	if err := s.DB.WithContext(ctx).Where("payment_id = ?", id).First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load payment")
	}
	if curr.PaymentStatus == m.StatusPaid {
		return fiber.NewError(fiber.StatusConflict, "paid records are locked")
	}
	if err := s.DB.WithContext(ctx).
		Where("payment_id = ?", curr.PaymentID).
		Delete(&m.PaymentModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete payment")
	}
	return nil
}

/* ======================= READS ======================= */

// List returns records newest payment first. When scope is non-nil the
// employee filter is forced to it, regardless of the caller's query.
func (s *PaymentService) List(ctx context.Context, q dto.ListPaymentQuery, scope *uuid.UUID, offset, limit int) ([]m.PaymentModel, int64, error) {
	base := s.DB.WithContext(ctx).Model(&m.PaymentModel{})

	if scope != nil {
		base = base.Where("payment_employee_id = ?", *scope)
	} else if q.EmployeeID != nil {
		base = base.Where("payment_employee_id = ?", *q.EmployeeID)
	}
	if q.Month != nil && *q.Month != "" {
		monthNo := MonthIndex(NormalizeMonth(*q.Month))
		if monthNo == 0 {
			return nil, 0, fiber.NewError(fiber.StatusBadRequest, "invalid month")
		}
		base = base.Where("payment_month_no = ?", monthNo)
	}
	if q.Year != nil {
		base = base.Where("payment_year = ?", *q.Year)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "failed to count payments")
	}

	var list []m.PaymentModel
	if err := base.
		Order("payment_date DESC, payment_created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "failed to list payments")
	}
	return list, total, nil
}

// GetByID loads one record; non-privileged requesters must own it.
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID, requester *uuid.UUID, privileged bool) (*m.PaymentModel, error) {
	var rec m.PaymentModel
	if err := s.DB.WithContext(ctx).Where("payment_id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "payment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load payment")
	}
	if !privileged {
		if requester == nil || *requester != rec.PaymentEmployeeID {
			return nil, fiber.NewError(fiber.StatusForbidden, "you do not own this payment record")
		}
	}
	return &rec, nil
}

// History returns all records for one employee in calendar order:
// year desc, then month desc ("November" sorts after "March").
func (s *PaymentService) History(ctx context.Context, employeeID uuid.UUID) ([]m.PaymentModel, error) {
	var list []m.PaymentModel
	if err := s.DB.WithContext(ctx).
		Where("payment_employee_id = ?", employeeID).
		Order("payment_year DESC, payment_month_no DESC").
		Find(&list).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load history")
	}
	return list, nil
}

/* ======================= PAYSLIP ======================= */

// Payslip returns the rendered document for a record, generating it
// synchronously when the async path has not completed yet (or when an
// admin forces regeneration). The async path is an optimization, not a
// correctness dependency.
func (s *PaymentService) Payslip(ctx context.Context, id uuid.UUID, requester *uuid.UUID, privileged, regenerate bool) (*m.PaymentModel, []byte, error) {
	rec, err := s.GetByID(ctx, id, requester, privileged)
	if err != nil {
		return nil, nil, err
	}

	if rec.PaymentPayslipGenerated && !regenerate && rec.PaymentPayslipURL != nil {
		data, err := s.Store.Read(ctx, *rec.PaymentPayslipURL)
		if err == nil {
			return rec, data, nil
		}
		// Stale or unreadable reference; fall through and re-render.
	}

	ref, data, err := s.GeneratePayslip(ctx, rec.PaymentID)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "failed to generate payslip")
	}
	rec.PaymentPayslipGenerated = true
	rec.PaymentPayslipURL = &ref
	return rec, data, nil
}

// GeneratePayslip renders the document for one record, writes it to the
// document store and marks completion with a field-scoped update so a
// concurrent admin edit to unrelated fields is never clobbered. Shared
// by the background worker and the on-demand path.
func (s *PaymentService) GeneratePayslip(ctx context.Context, paymentID uuid.UUID) (string, []byte, error) {
	var rec m.PaymentModel
	if err := s.DB.WithContext(ctx).Where("payment_id = ?", paymentID).First(&rec).Error; err != nil {
		return "", nil, fmt.Errorf("load payment %s: %w", paymentID, err)
	}
	var emp empModel.EmployeeModel
	if err := s.DB.WithContext(ctx).Where("employee_id = ?", rec.PaymentEmployeeID).First(&emp).Error; err != nil {
		return "", nil, fmt.Errorf("load employee %s: %w", rec.PaymentEmployeeID, err)
	}

	data, err := RenderPayslip(BuildPayslipData(&rec, &emp))
	if err != nil {
		return "", nil, fmt.Errorf("render payslip: %w", err)
	}

	name := fmt.Sprintf("payslip_%s_%s_%d.pdf", emp.EmployeeID, rec.PaymentMonth, rec.PaymentYear)
	ref, err := s.Store.Write(ctx, data, name, "application/pdf")
	if err != nil {
		return "", nil, fmt.Errorf("store payslip: %w", err)
	}

	if err := s.DB.WithContext(ctx).Model(&m.PaymentModel{}).
		Where("payment_id = ?", rec.PaymentID).
		Updates(map[string]interface{}{
			"payment_payslip_generated": true,
			"payment_payslip_url":       ref,
		}).Error; err != nil {
		return "", nil, fmt.Errorf("record payslip reference: %w", err)
	}
	return ref, data, nil
}
