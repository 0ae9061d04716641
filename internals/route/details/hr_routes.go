package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	employeeRoutes "workdesk_backend/internals/features/hr/employees/routes"
	paymentRoutes "workdesk_backend/internals/features/hr/payments/routes"
	"workdesk_backend/internals/features/hr/payments/service"
	"workdesk_backend/internals/helpers/storage"
)

// HrAdminRoutes mounts the privileged HR surface: the employee
// directory and the full payment lifecycle.
func HrAdminRoutes(admin fiber.Router, db *gorm.DB, svc *service.PaymentService, store storage.DocumentStore) {
	employeeRoutes.EmployeeAdminRoutes(admin, db, store)
	paymentRoutes.PaymentAdminRoutes(admin, svc)
}

// HrUserRoutes mounts the self-scoped payment surface.
func HrUserRoutes(user fiber.Router, svc *service.PaymentService) {
	paymentRoutes.PaymentUserRoutes(user, svc)
}
