package user

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/marketplace-backend/internal/auth"
)

func makeAppWithUserHandler(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s request failed: %v", path, err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestRegisterAndLoginRoutes(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	issuer := auth.NewIssuer("test-secret", time.Hour)
	app := makeAppWithUserHandler(NewHandler(newTestService(repo), issuer))

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	if !routes["/login"] || !routes["/register"] {
		t.Fatalf("expected /login and /register to be registered")
	}

	// phone_no sent as a number, as older clients do
	status, body := postJSON(t, app, "/register", `{"username":"ann","password":"pw","role":"customer","name":"Ann","email":"ann@example.com","address":"1 Main St","phone_no":712345678}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201 on register, got %d: %s", status, body)
	}
	c, err := repo.GetCustomerByUserID(context.Background(), 1)
	if err != nil || c.Phone != "712345678" {
		t.Fatalf("customer phone not stored as digits: %+v %v", c, err)
	}

	status, body = postJSON(t, app, "/register", `{"username":"ann","password":"pw","role":"customer","name":"A","email":"a2@example.com","address":"x","phone_no":"1"}`)
	if status != fiber.StatusBadRequest || !strings.Contains(body, "username already exists") {
		t.Fatalf("expected 400 duplicate username, got %d: %s", status, body)
	}

	status, body = postJSON(t, app, "/login", `{"username":"ann","password":"pw"}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 on login, got %d: %s", status, body)
	}
	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal([]byte(body), &tokenResp); err != nil || tokenResp.AccessToken == "" {
		t.Fatalf("login response missing access_token: %s", body)
	}
	id, err := issuer.Parse(tokenResp.AccessToken)
	if err != nil || id.UserID != 1 || id.Role != auth.RoleCustomer {
		t.Fatalf("token does not carry identity: %+v %v", id, err)
	}
}

func TestLogin_SameErrorForUnknownAndWrongPassword(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	svc := newTestService(repo)
	app := makeAppWithUserHandler(NewHandler(svc, auth.NewIssuer("test-secret", time.Hour)))
	if _, err := svc.Register(context.Background(), customerInput("ann", "ann@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	s1, b1 := postJSON(t, app, "/login", `{"username":"ann","password":"wrong"}`)
	s2, b2 := postJSON(t, app, "/login", `{"username":"nobody","password":"wrong"}`)
	if s1 != fiber.StatusUnauthorized || s2 != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for both, got %d and %d", s1, s2)
	}
	if b1 != b2 {
		t.Fatalf("error bodies differ: %q vs %q", b1, b2)
	}

	s3, _ := postJSON(t, app, "/login", `{"username":"ann"}`)
	if s3 != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", s3)
	}
}

func TestRegister_RequestValidation(t *testing.T) {
	app := makeAppWithUserHandler(NewHandler(newTestService(NewInMemoryRepository(nil)), auth.NewIssuer("s", time.Hour)))

	cases := []struct {
		body string
		want string
	}{
		{`{"password":"pw","role":"customer"}`, "username is required"},
		{`{"username":"a","password":"pw","role":"admin"}`, "role must be one of"},
		{`{"username":"a","password":"pw","role":"customer","name":"n","email":"not-an-email","address":"x","phone_no":"1"}`, "email must be a valid email"},
		{`{"username":"a","password":"pw","role":"seller","business_name":"b"}`, "missing seller details"},
		{`{"username":"a","password":"pw","role":"customer","name":"n","email":"n@x.io","address":"x"}`, "missing customer details"},
	}
	for _, tc := range cases {
		status, body := postJSON(t, app, "/register", tc.body)
		if status != fiber.StatusBadRequest || !strings.Contains(body, tc.want) {
			t.Errorf("%s: expected 400 containing %q, got %d %s", tc.body, tc.want, status, body)
		}
	}
}

func TestRegister_PasswordLength(t *testing.T) {
	app := makeAppWithUserHandler(NewHandler(newTestService(NewInMemoryRepository(nil)), auth.NewIssuer("s", time.Hour)))
	tmpl := `{"username":"ann","password":%q,"role":"customer","name":"Ann","email":"ann@example.com","address":"1 Main St","phone_no":"1"}`

	status, body := postJSON(t, app, "/register", fmt.Sprintf(tmpl, strings.Repeat("a", 73)))
	if status != fiber.StatusBadRequest || !strings.Contains(body, "password must be at most 72") {
		t.Fatalf("expected 400 for 73-byte password, got %d %s", status, body)
	}

	// 25 runes but 75 bytes passes the tag and is caught before hashing
	status, body = postJSON(t, app, "/register", fmt.Sprintf(tmpl, strings.Repeat("€", 25)))
	if status != fiber.StatusBadRequest || !strings.Contains(body, "password must be at most 72 bytes") {
		t.Fatalf("expected 400 for multibyte password, got %d %s", status, body)
	}

	if status, body := postJSON(t, app, "/register", fmt.Sprintf(tmpl, strings.Repeat("a", 72))); status != fiber.StatusCreated {
		t.Fatalf("expected 201 for 72-byte password, got %d %s", status, body)
	}
}

func TestLogin_UsernameTrimmedLikeRegister(t *testing.T) {
	app := makeAppWithUserHandler(NewHandler(newTestService(NewInMemoryRepository(nil)), auth.NewIssuer("s", time.Hour)))

	status, body := postJSON(t, app, "/register", `{"username":"bob ","password":"pw","role":"customer","name":"Bob","email":"bob@example.com","address":"x","phone_no":"1"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d %s", status, body)
	}
	for _, name := range []string{"bob ", "bob", "  bob"} {
		if status, body := postJSON(t, app, "/login", fmt.Sprintf(`{"username":%q,"password":"pw"}`, name)); status != fiber.StatusOK {
			t.Errorf("login as %q: expected 200, got %d %s", name, status, body)
		}
	}
}
