package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"workdesk_backend/internals/configs"
	"workdesk_backend/internals/constants"
	empModel "workdesk_backend/internals/features/hr/employees/model"
	"workdesk_backend/internals/features/hr/payments/dto"
	payModel "workdesk_backend/internals/features/hr/payments/model"
	paymentRoutes "workdesk_backend/internals/features/hr/payments/routes"
	"workdesk_backend/internals/features/hr/payments/service"
	"workdesk_backend/internals/helpers/storage"
	authMiddleware "workdesk_backend/internals/middlewares/auth"
)

const testSecret = "payment-controller-test-secret"

func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *service.PaymentService) {
	t.Helper()
	configs.JWTSecret = testSecret

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&empModel.EmployeeModel{}, &payModel.PaymentModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := service.NewPaymentService(db, &storage.LocalStore{Dir: t.TempDir()})

	app := fiber.New()
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("You are not allowed to manage payroll", constants.RoleAdmin),
	)
	paymentRoutes.PaymentAdminRoutes(admin, svc)

	user := app.Group("/api/u", authMiddleware.AuthMiddleware())
	paymentRoutes.PaymentUserRoutes(user, svc)

	return app, db, svc
}

func mintToken(t *testing.T, role string, employeeID *uuid.UUID) string {
	t.Helper()
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"typ":       "access",
		"sub":       uuid.NewString(),
		"user_name": "test-account",
		"role":      role,
		"iat":       now.Unix(),
		"exp":       now.Add(time.Hour).Unix(),
	}
	if employeeID != nil {
		claims["employee_id"] = employeeID.String()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func seedEmployee(t *testing.T, db *gorm.DB, salary float64) *empModel.EmployeeModel {
	t.Helper()
	emp := &empModel.EmployeeModel{
		EmployeeName:   "Arjun Mehta",
		EmployeeEmail:  uuid.NewString() + "@example.com",
		EmployeeSalary: salary,
	}
	if err := db.Create(emp).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return emp
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	ErrorCode  string          `json:"error_code"`
	Data       json.RawMessage `json:"data"`
	Pagination json.RawMessage `json:"pagination"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestAdminCreatePayment(t *testing.T) {
	app, db, _ := setupApp(t)
	emp := seedEmployee(t, db, 4200)
	adminToken := mintToken(t, constants.RoleAdmin, nil)

	resp := doJSON(t, app, fiber.MethodPost, "/api/a/payments", adminToken, fiber.Map{
		"employee": emp.EmployeeID,
		"month":       "march",
		"year":        2026,
		"bonus":       300,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if !env.Success || env.Message != "payment recorded" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	var rec dto.PaymentResponse
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		t.Fatalf("decode payment: %v", err)
	}
	if rec.PaymentMonth != "March" || rec.PaymentAmount != 4200 || rec.PaymentNetSalary != 4500 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.PaymentStatus != payModel.StatusPaid {
		t.Fatalf("status = %q, want paid", rec.PaymentStatus)
	}

	// Same period again is a conflict.
	resp = doJSON(t, app, fiber.MethodPost, "/api/a/payments", adminToken, fiber.Map{
		"employee": emp.EmployeeID,
		"month":       "March",
		"year":        2026,
	})
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", resp.StatusCode)
	}
	env = decodeEnvelope(t, resp)
	if env.Success || env.Message != "month locked" || env.ErrorCode != "CONFLICT" {
		t.Fatalf("unexpected conflict envelope: %+v", env)
	}
}

func TestAdminSurfaceRequiresAdminRole(t *testing.T) {
	app, db, _ := setupApp(t)
	emp := seedEmployee(t, db, 4200)

	body := fiber.Map{"employee": emp.EmployeeID, "month": "March", "year": 2026}

	resp := doJSON(t, app, fiber.MethodPost, "/api/a/payments", "", body)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", resp.StatusCode)
	}

	employeeToken := mintToken(t, constants.RoleEmployee, &emp.EmployeeID)
	resp = doJSON(t, app, fiber.MethodPost, "/api/a/payments", employeeToken, body)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("employee token: status = %d, want 403", resp.StatusCode)
	}
}

func TestUserListScopedToOwnIdentity(t *testing.T) {
	app, db, svc := setupApp(t)
	mine := seedEmployee(t, db, 4200)
	other := seedEmployee(t, db, 4200)
	ctx := context.Background()

	for _, emp := range []*empModel.EmployeeModel{mine, other} {
		id := emp.EmployeeID
		if _, err := svc.Create(ctx, dto.CreatePaymentRequest{EmployeeID: &id, Month: "May", Year: 2026}, uuid.New()); err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}

	// Asking for someone else's records changes nothing.
	token := mintToken(t, constants.RoleEmployee, &mine.EmployeeID)
	resp := doJSON(t, app, fiber.MethodGet,
		fmt.Sprintf("/api/u/payments?employee=%s", other.EmployeeID), token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	var list []dto.PaymentResponse
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].PaymentEmployeeID != mine.EmployeeID {
		t.Fatalf("scope leaked: %+v", list)
	}

	// An account without a linked employee sees nothing.
	unlinked := mintToken(t, constants.RoleEmployee, nil)
	resp = doJSON(t, app, fiber.MethodGet, "/api/u/payments", unlinked, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env = decodeEnvelope(t, resp)
	list = nil
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("unlinked account saw %d records", len(list))
	}
}

func TestUserGetOthersPaymentForbidden(t *testing.T) {
	app, db, svc := setupApp(t)
	mine := seedEmployee(t, db, 4200)
	other := seedEmployee(t, db, 4200)

	id := other.EmployeeID
	rec, err := svc.Create(context.Background(), dto.CreatePaymentRequest{EmployeeID: &id, Month: "May", Year: 2026}, uuid.New())
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	token := mintToken(t, constants.RoleEmployee, &mine.EmployeeID)
	resp := doJSON(t, app, fiber.MethodGet, "/api/u/payments/"+rec.PaymentID.String(), token, nil)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if env.Message != "you do not own this payment record" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
}

func TestUserPayslipDownload(t *testing.T) {
	app, db, svc := setupApp(t)
	emp := seedEmployee(t, db, 4200)

	id := emp.EmployeeID
	rec, err := svc.Create(context.Background(), dto.CreatePaymentRequest{EmployeeID: &id, Month: "May", Year: 2026}, uuid.New())
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	// No worker is attached, so this exercises the on-demand render.
	token := mintToken(t, constants.RoleEmployee, &emp.EmployeeID)
	resp := doJSON(t, app, fiber.MethodGet, "/api/u/payments/"+rec.PaymentID.String()+"/payslip", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatal("response is not a PDF document")
	}
}

func TestAdminDeletePaidPayment(t *testing.T) {
	app, db, svc := setupApp(t)
	emp := seedEmployee(t, db, 4200)

	id := emp.EmployeeID
	rec, err := svc.Create(context.Background(), dto.CreatePaymentRequest{EmployeeID: &id, Month: "May", Year: 2026}, uuid.New())
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	adminToken := mintToken(t, constants.RoleAdmin, nil)
	resp := doJSON(t, app, fiber.MethodDelete, "/api/a/payments/"+rec.PaymentID.String(), adminToken, nil)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if env.Message != "paid records are locked" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
}

func TestAdminHistoryCalendarOrder(t *testing.T) {
	app, db, svc := setupApp(t)
	emp := seedEmployee(t, db, 4200)
	ctx := context.Background()

	id := emp.EmployeeID
	for _, p := range []struct {
		month string
		year  int
	}{
		{"March", 2025},
		{"November", 2025},
		{"January", 2026},
	} {
		if _, err := svc.Create(ctx, dto.CreatePaymentRequest{EmployeeID: &id, Month: p.month, Year: p.year}, uuid.New()); err != nil {
			t.Fatalf("seed %s %d: %v", p.month, p.year, err)
		}
	}

	adminToken := mintToken(t, constants.RoleAdmin, nil)
	resp := doJSON(t, app, fiber.MethodGet,
		"/api/a/payments/employee/"+emp.EmployeeID.String()+"/history", adminToken, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	var list []dto.PaymentResponse
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	want := []string{"January", "November", "March"}
	if len(list) != len(want) {
		t.Fatalf("history length = %d, want %d", len(list), len(want))
	}
	for i, rec := range list {
		if rec.PaymentMonth != want[i] {
			t.Fatalf("history[%d] = %s, want %s", i, rec.PaymentMonth, want[i])
		}
	}
}
