// internals/features/hr/employees/controller/employee_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"workdesk_backend/internals/features/hr/employees/dto"
	m "workdesk_backend/internals/features/hr/employees/model"
	helper "workdesk_backend/internals/helpers"
	"workdesk_backend/internals/helpers/storage"
)

type EmployeeController struct {
	DB    *gorm.DB
	Store storage.DocumentStore
}

func NewEmployeeController(db *gorm.DB, store storage.DocumentStore) *EmployeeController {
	return &EmployeeController{DB: db, Store: store}
}

func parseEmployeeID(c *fiber.Ctx) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "employee id required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid employee id")
	}
	return id, nil
}

/* ======================= CREATE ======================= */
// POST /api/a/employees
func (h *EmployeeController) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	mo := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(mo).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create employee")
	}
	return helper.JsonCreated(c, "employee created", dto.FromModel(*mo))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/employees/:id
func (h *EmployeeController) GetByID(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var row m.EmployeeModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("employee_id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "employee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load employee")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(row))
}

/* ======================= LIST ======================= */
// GET /api/a/employees?department=&q=&page=&per_page=
func (h *EmployeeController) List(c *fiber.Ctx) error {
	var q dto.ListEmployeeQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	p := helper.ResolvePaging(c, 20, 100)

	base := h.DB.WithContext(c.UserContext()).Model(&m.EmployeeModel{})
	if q.Department != nil && *q.Department != "" {
		base = base.Where("employee_department = ?", *q.Department)
	}
	if q.Q != nil && *q.Q != "" {
		like := "%" + strings.ToLower(*q.Q) + "%"
		base = base.Where("(LOWER(employee_name) LIKE ? OR LOWER(employee_email) LIKE ?)", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count employees")
	}

	var list []m.EmployeeModel
	if err := base.
		Order("employee_name ASC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list employees")
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), helper.BuildPagination(total, p.Page, p.PerPage))
}

/* ======================= UPDATE (PUT, partial) ======================= */
// PUT /api/a/employees/:id
func (h *EmployeeController) Update(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var curr m.EmployeeModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("employee_id = ?", id).
		First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "employee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load employee")
	}

	patch := map[string]interface{}{}
	if req.EmployeeName != nil {
		patch["employee_name"] = *req.EmployeeName
	}
	if req.EmployeeEmail != nil {
		patch["employee_email"] = *req.EmployeeEmail
	}
	if req.EmployeeDesignation != nil {
		patch["employee_designation"] = *req.EmployeeDesignation
	}
	if req.EmployeeDepartment != nil {
		patch["employee_department"] = *req.EmployeeDepartment
	}
	if req.EmployeeSalary != nil {
		patch["employee_salary"] = *req.EmployeeSalary
	}
	if req.EmployeeSkills != nil {
		patch["employee_skills"] = pq.StringArray(req.EmployeeSkills)
	}
	if req.EmployeeMeta != nil {
		patch["employee_meta"] = req.EmployeeMeta
	}
	if req.EmployeeUserID != nil {
		patch["employee_user_id"] = *req.EmployeeUserID
	}

	if len(patch) == 0 {
		return helper.JsonOK(c, "no changes", dto.FromModel(curr))
	}

	if err := h.DB.WithContext(c.UserContext()).Model(&m.EmployeeModel{}).
		Where("employee_id = ?", id).
		Updates(patch).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update employee")
	}

	var updated m.EmployeeModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("employee_id = ?", id).
		First(&updated).Error; err != nil {
		return helper.JsonUpdated(c, "employee updated", dto.FromModel(curr))
	}
	return helper.JsonUpdated(c, "employee updated", dto.FromModel(updated))
}

/* ======================= DELETE (SOFT) ======================= */
// DELETE /api/a/employees/:id
func (h *EmployeeController) Delete(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	res := h.DB.WithContext(c.UserContext()).
		Where("employee_id = ?", id).
		Delete(&m.EmployeeModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete employee")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "employee not found")
	}
	return helper.JsonDeleted(c, "employee deleted", fiber.Map{"employee_id": id})
}

/* ======================= PHOTO UPLOAD ======================= */
// POST /api/a/employees/:id/photo (multipart field "photo")
func (h *EmployeeController) UploadPhoto(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var curr m.EmployeeModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("employee_id = ?", id).
		First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "employee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load employee")
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "photo file required")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "cannot read photo")
	}
	defer f.Close()

	webpBytes, err := storage.ConvertToWebP(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "unsupported image")
	}

	ref, err := h.Store.Write(c.UserContext(), webpBytes, "photo_"+id.String()+".webp", "image/webp")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to store photo")
	}

	if err := h.DB.WithContext(c.UserContext()).Model(&m.EmployeeModel{}).
		Where("employee_id = ?", id).
		Update("employee_photo_url", ref).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save photo reference")
	}
	return helper.JsonUpdated(c, "photo updated", fiber.Map{"employee_photo_url": ref})
}
