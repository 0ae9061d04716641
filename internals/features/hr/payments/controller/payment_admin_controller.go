// internals/features/hr/payments/controller/payment_admin_controller.go
package controller

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"workdesk_backend/internals/features/hr/payments/dto"
	"workdesk_backend/internals/features/hr/payments/service"
	helper "workdesk_backend/internals/helpers"
)

// PaymentAdminController serves the privileged payment surface.
type PaymentAdminController struct {
	Service *service.PaymentService
}

func NewPaymentAdminController(svc *service.PaymentService) *PaymentAdminController {
	return &PaymentAdminController{Service: svc}
}

func parsePaymentID(c *fiber.Ctx) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "payment id required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid payment id")
	}
	return id, nil
}

/* ======================= CREATE ======================= */
// POST /api/a/payments
func (h *PaymentAdminController) Create(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	rec, err := h.Service.Create(c.UserContext(), req, adminID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "payment recorded", dto.FromModel(*rec))
}

/* ======================= UPDATE ======================= */
// PUT /api/a/payments/:id
func (h *PaymentAdminController) Update(c *fiber.Ctx) error {
	id, err := parsePaymentID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	rec, err := h.Service.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "payment updated", dto.FromModel(*rec))
}

/* ======================= DELETE ======================= */
// DELETE /api/a/payments/:id
func (h *PaymentAdminController) Delete(c *fiber.Ctx) error {
	id, err := parsePaymentID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "payment deleted", fiber.Map{"payment_id": id})
}

/* ======================= LIST ======================= */
// GET /api/a/payments?employee=&month=&year=&page=&per_page=
func (h *PaymentAdminController) List(c *fiber.Ctx) error {
	var q dto.ListPaymentQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	p := helper.ResolvePaging(c, 20, 100)

	list, total, err := h.Service.List(c.UserContext(), q, nil, p.Offset, p.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), helper.BuildPagination(total, p.Page, p.PerPage))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/payments/:id
func (h *PaymentAdminController) GetByID(c *fiber.Ctx) error {
	id, err := parsePaymentID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rec, err := h.Service.GetByID(c.UserContext(), id, nil, true)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*rec))
}

/* ======================= HISTORY ======================= */
// GET /api/a/payments/employee/:employeeId/history
func (h *PaymentAdminController) History(c *fiber.Ctx) error {
	empStr := strings.TrimSpace(c.Params("employeeId"))
	empID, err := uuid.Parse(empStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid employee id")
	}
	list, err := h.Service.History(c.UserContext(), empID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModels(list))
}

/* ======================= PAYSLIP ======================= */
// GET /api/a/payments/:id/payslip?regenerate=1
func (h *PaymentAdminController) Payslip(c *fiber.Ctx) error {
	id, err := parsePaymentID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	regenerate := c.QueryBool("regenerate", false)

	rec, data, err := h.Service.Payslip(c.UserContext(), id, nil, true, regenerate)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return sendPayslip(c, rec.PaymentMonth, rec.PaymentYear, data)
}

func sendPayslip(c *fiber.Ctx, month string, year int, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="payslip_%s_%d.pdf"`, strings.ToLower(month), year))
	return c.Send(data)
}
