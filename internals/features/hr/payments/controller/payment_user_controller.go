// internals/features/hr/payments/controller/payment_user_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"workdesk_backend/internals/features/hr/payments/dto"
	"workdesk_backend/internals/features/hr/payments/service"
	helper "workdesk_backend/internals/helpers"
)

// PaymentUserController serves the self-scoped payment surface. A
// non-privileged requester only ever sees records for the employee
// identity linked to their account, regardless of query params.
type PaymentUserController struct {
	Service *service.PaymentService
}

func NewPaymentUserController(svc *service.PaymentService) *PaymentUserController {
	return &PaymentUserController{Service: svc}
}

/* ======================= LIST (OWN) ======================= */
// GET /api/u/payments?month=&year=&page=&per_page=
func (h *PaymentUserController) List(c *fiber.Ctx) error {
	var q dto.ListPaymentQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	p := helper.ResolvePaging(c, 20, 100)

	scope := helper.GetEmployeeIDFromToken(c)
	if !helper.IsAdmin(c) && scope == nil {
		// Account without a linked employee owns nothing.
		return helper.JsonList(c, "ok", []dto.PaymentResponse{}, helper.BuildPagination(0, p.Page, p.PerPage))
	}
	if helper.IsAdmin(c) {
		scope = nil
	}

	list, total, err := h.Service.List(c.UserContext(), q, scope, p.Offset, p.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), helper.BuildPagination(total, p.Page, p.PerPage))
}

/* ======================= GET BY ID ======================= */
// GET /api/u/payments/:id
func (h *PaymentUserController) GetByID(c *fiber.Ctx) error {
	id, err := parsePaymentID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rec, err := h.Service.GetByID(c.UserContext(), id, helper.GetEmployeeIDFromToken(c), helper.IsAdmin(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*rec))
}

/* ======================= PAYSLIP ======================= */
// GET /api/u/payments/:id/payslip
func (h *PaymentUserController) Payslip(c *fiber.Ctx) error {
	id, err := parsePaymentID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// Regeneration stays an admin affordance; for everyone else the
	// stored document (or a first on-demand render) is served.
	regenerate := helper.IsAdmin(c) && c.QueryBool("regenerate", false)

	rec, data, err := h.Service.Payslip(c.UserContext(), id, helper.GetEmployeeIDFromToken(c), helper.IsAdmin(c), regenerate)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return sendPayslip(c, rec.PaymentMonth, rec.PaymentYear, data)
}
