package routes

import (
	"github.com/gofiber/fiber/v2"

	paymentController "workdesk_backend/internals/features/hr/payments/controller"
	"workdesk_backend/internals/features/hr/payments/service"
)

// PaymentAdminRoutes mounts the privileged payment endpoints on an
// already role-guarded router group.
func PaymentAdminRoutes(r fiber.Router, svc *service.PaymentService) {
	ctrl := paymentController.NewPaymentAdminController(svc)

	payments := r.Group("/payments")
	payments.Post("/", ctrl.Create)
	payments.Get("/", ctrl.List)
	payments.Get("/employee/:employeeId/history", ctrl.History)
	payments.Get("/:id", ctrl.GetByID)
	payments.Put("/:id", ctrl.Update)
	payments.Delete("/:id", ctrl.Delete)
	payments.Get("/:id/payslip", ctrl.Payslip)
}
