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

	"workdesk_backend/internals/configs"
	"workdesk_backend/internals/constants"
	userModel "workdesk_backend/internals/features/users/auth/model"
	authRoutes "workdesk_backend/internals/features/users/auth/routes"
)

func setupAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "auth-controller-test-secret"

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&userModel.UserModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	authRoutes.AuthRoutes(app.Group("/api"), db)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func TestRegisterBootstrapsFirstAdmin(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp := postJSON(t, app, "/api/auth/register", fiber.Map{
		"user_name": "founder",
		"email":     "founder@example.com",
		"password":  "correct-horse-battery",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var env struct {
		Data struct {
			Role string `json:"role"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if env.Data.Role != constants.RoleAdmin {
		t.Fatalf("first account role = %q, want admin", env.Data.Role)
	}

	// Everyone after the first starts as employee.
	resp = postJSON(t, app, "/api/auth/register", fiber.Map{
		"user_name": "second",
		"email":     "second@example.com",
		"password":  "correct-horse-battery",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	env.Data.Role = ""
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if env.Data.Role != constants.RoleEmployee {
		t.Fatalf("second account role = %q, want employee", env.Data.Role)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp := postJSON(t, app, "/api/auth/register", fiber.Map{
		"user_name": "priya",
		"email":     "priya@example.com",
		"password":  "correct-horse-battery",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/auth/login", fiber.Map{
		"email":    "priya@example.com",
		"password": "wrong-password",
	})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", resp.StatusCode)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/auth/login", fiber.Map{
		"email":    "priya@example.com",
		"password": "correct-horse-battery",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	var env struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if env.Data.AccessToken == "" {
		t.Fatal("no access token in response")
	}

	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == "access_token" {
			cookie = c.Value
		}
	}
	if cookie == "" {
		t.Fatal("access_token cookie not set")
	}
}
