package routes

import (
	"github.com/gofiber/fiber/v2"

	paymentController "workdesk_backend/internals/features/hr/payments/controller"
	"workdesk_backend/internals/features/hr/payments/service"
)

// PaymentUserRoutes mounts the self-scoped payment endpoints for any
// authenticated account.
func PaymentUserRoutes(r fiber.Router, svc *service.PaymentService) {
	ctrl := paymentController.NewPaymentUserController(svc)

	payments := r.Group("/payments")
	payments.Get("/", ctrl.List)
	payments.Get("/:id", ctrl.GetByID)
	payments.Get("/:id/payslip", ctrl.Payslip)
}
