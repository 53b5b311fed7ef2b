package admin

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"shop-insights-backend/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:     "test-secret",
		AdminUser:     "admin",
		AdminPassword: "hunter2",
	}
}

func signInApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	a := fiber.New()
	h := NewHandler(db, testConfig())
	h.RegisterPublicRoutes(a)
	h.RegisterProtectedRoutes(a)
	return a, mock, func() { db.Close() }
}

func TestSignIn_IssuesToken(t *testing.T) {
	a, _, closeDB := signInApp(t)
	defer closeDB()

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "hunter2"})
	req := httptest.NewRequest("POST", "/api/v1/sign-in", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var out map[string]string
	raw, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("invalid body %s: %v", raw, err)
	}

	token, err := jwt.Parse(out["token"], func(tok *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != "admin" || claims["admin"] != true {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestSignIn_RejectsBadCredentials(t *testing.T) {
	a, _, closeDB := signInApp(t)
	defer closeDB()

	cases := []map[string]string{
		{"username": "admin", "password": "wrong"},
		{"username": "someone", "password": "hunter2"},
	}
	for _, payload := range cases {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/v1/sign-in", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		res, err := a.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%v: expected 401, got %d", payload, res.StatusCode)
		}
	}
}

func TestSignIn_RefusesWithoutConfiguredPassword(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cfg := testConfig()
	cfg.AdminPassword = ""
	a := fiber.New()
	NewHandler(db, cfg).RegisterPublicRoutes(a)

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": ""})
	req := httptest.NewRequest("POST", "/api/v1/sign-in", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 when no password configured, got %d", res.StatusCode)
	}
}

func TestReset_GatedByEnv(t *testing.T) {
	a, _, closeDB := signInApp(t)
	defer closeDB()

	t.Setenv("ALLOW_RESET_DATA", "0")
	res, err := a.Test(httptest.NewRequest("POST", "/admin/reset", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.StatusCode)
	}
}

func TestReset_TruncatesTables(t *testing.T) {
	a, mock, closeDB := signInApp(t)
	defer closeDB()

	t.Setenv("ALLOW_RESET_DATA", "1")
	mock.ExpectExec("TRUNCATE orders, products, users").WillReturnResult(sqlmock.NewResult(0, 0))

	res, err := a.Test(httptest.NewRequest("POST", "/admin/reset", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
