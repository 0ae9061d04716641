package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"workdesk_backend/internals/features/hr/employees/dto"
	empModel "workdesk_backend/internals/features/hr/employees/model"
	employeeRoutes "workdesk_backend/internals/features/hr/employees/routes"
	"workdesk_backend/internals/helpers/storage"
)

// Role gating lives in the router group middleware and is covered by
// the payment surface tests; here the directory is mounted bare.
func setupEmployeeApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&empModel.EmployeeModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	employeeRoutes.EmployeeAdminRoutes(app.Group("/api/a"), db, &storage.LocalStore{Dir: t.TempDir()})
	return app, db
}

func doReq(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) string {
	t.Helper()
	defer resp.Body.Close()
	var env struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env.Message
}

func TestEmployeeCreateAndDuplicateEmail(t *testing.T) {
	app, _ := setupEmployeeApp(t)

	body := fiber.Map{
		"employee_name":       "Sara Iyer",
		"employee_email":      "sara@example.com",
		"employee_department": "Engineering",
		"employee_salary":     6000,
	}
	resp := doReq(t, app, fiber.MethodPost, "/api/a/employees", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var created dto.EmployeeResponse
	decodeData(t, resp, &created)
	if created.EmployeeName != "Sara Iyer" || created.EmployeeSalary != 6000 {
		t.Fatalf("unexpected employee: %+v", created)
	}

	resp = doReq(t, app, fiber.MethodPost, "/api/a/employees", body)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", resp.StatusCode)
	}
	if msg := decodeData(t, resp, nil); msg != "email already registered" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestEmployeePartialUpdate(t *testing.T) {
	app, db := setupEmployeeApp(t)

	emp := &empModel.EmployeeModel{
		EmployeeName:   "Dev Kapoor",
		EmployeeEmail:  "dev@example.com",
		EmployeeSalary: 4000,
	}
	if err := db.Create(emp).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp := doReq(t, app, fiber.MethodPut, "/api/a/employees/"+emp.EmployeeID.String(), fiber.Map{
		"employee_salary": 4500,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var updated dto.EmployeeResponse
	decodeData(t, resp, &updated)
	if updated.EmployeeSalary != 4500 {
		t.Fatalf("salary = %v, want 4500", updated.EmployeeSalary)
	}
	if updated.EmployeeName != "Dev Kapoor" {
		t.Fatalf("untouched field changed: %q", updated.EmployeeName)
	}
}

func TestEmployeeListSearch(t *testing.T) {
	app, db := setupEmployeeApp(t)

	for _, e := range []empModel.EmployeeModel{
		{EmployeeName: "Asha Rao", EmployeeEmail: "asha@example.com", EmployeeDepartment: "Finance"},
		{EmployeeName: "Vikram Shah", EmployeeEmail: "vikram@example.com", EmployeeDepartment: "Engineering"},
	} {
		e := e
		if err := db.Create(&e).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	resp := doReq(t, app, fiber.MethodGet, "/api/a/employees?q=asha", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var list []dto.EmployeeResponse
	decodeData(t, resp, &list)
	if len(list) != 1 || list[0].EmployeeName != "Asha Rao" {
		t.Fatalf("search result: %+v", list)
	}

	resp = doReq(t, app, fiber.MethodGet, "/api/a/employees?department=Engineering", nil)
	list = nil
	decodeData(t, resp, &list)
	if len(list) != 1 || list[0].EmployeeDepartment != "Engineering" {
		t.Fatalf("department filter: %+v", list)
	}
}

func TestEmployeeDelete(t *testing.T) {
	app, db := setupEmployeeApp(t)

	emp := &empModel.EmployeeModel{
		EmployeeName:  "Rohit Rane",
		EmployeeEmail: "rohit@example.com",
	}
	if err := db.Create(emp).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp := doReq(t, app, fiber.MethodDelete, "/api/a/employees/"+emp.EmployeeID.String(), nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	resp = doReq(t, app, fiber.MethodGet, "/api/a/employees/"+emp.EmployeeID.String(), nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("after delete status = %d, want 404", resp.StatusCode)
	}

	resp = doReq(t, app, fiber.MethodDelete, "/api/a/employees/"+emp.EmployeeID.String(), nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("double delete status = %d, want 404", resp.StatusCode)
	}
}
