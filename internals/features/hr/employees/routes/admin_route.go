package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	employeeController "workdesk_backend/internals/features/hr/employees/controller"
	"workdesk_backend/internals/helpers/storage"
)

// EmployeeAdminRoutes mounts the employee directory on a role-guarded
// router group.
func EmployeeAdminRoutes(r fiber.Router, db *gorm.DB, store storage.DocumentStore) {
	ctrl := employeeController.NewEmployeeController(db, store)

	employees := r.Group("/employees")
	employees.Post("/", ctrl.Create)
	employees.Get("/", ctrl.List)
	employees.Get("/:id", ctrl.GetByID)
	employees.Put("/:id", ctrl.Update)
	employees.Delete("/:id", ctrl.Delete)
	employees.Post("/:id/photo", ctrl.UploadPhoto)
}
