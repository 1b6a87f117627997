package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paycycle/internal/services"
	"paycycle/internal/store/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	st := memory.New()
	svc := services.NewBudgetService(st, nil)
	s := NewServer(":0", svc)
	t.Cleanup(func() { s.rateLimiter.stop() })
	return s, st
}

func doJSON(t *testing.T, s *Server, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("%s: invalid JSON response %q: %v", path, rec.Body.String(), err)
	}
	return rec, decoded
}

func signupTestUser(t *testing.T, s *Server) {
	t.Helper()
	rec, _ := doJSON(t, s, "/api/signup", `{"name":"Asha","email":"asha@example.com","income":50000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("signup status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestSignupAndDuplicate(t *testing.T) {
	s, _ := newTestServer(t)
	signupTestUser(t, s)

	rec, body := doJSON(t, s, "/api/signup", `{"name":"Asha","email":"asha@example.com","income":50000}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup status = %d, want 400", rec.Code)
	}
	if msg, ok := body["error"].(string); !ok || msg == "" {
		t.Fatalf("duplicate signup must return an error string, got %v", body)
	}
}

func TestAddExpenseSuccessShape(t *testing.T) {
	s, _ := newTestServer(t)
	signupTestUser(t, s)

	rec, body := doJSON(t, s, "/api/expenses",
		`{"email":"asha@example.com","reason":"rent","category":"expense (necessity)","description":"july","amount":9000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true {
		t.Fatalf("expected {\"success\":true}, got %v", body)
	}
}

func TestAddExpenseErrors(t *testing.T) {
	s, _ := newTestServer(t)
	signupTestUser(t, s)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"unknown user", `{"email":"ghost@example.com","reason":"r","category":"savings","description":"d","amount":10}`, http.StatusNotFound},
		{"zero amount", `{"email":"asha@example.com","reason":"r","category":"savings","description":"d","amount":0}`, http.StatusBadRequest},
		{"bad category", `{"email":"asha@example.com","reason":"r","category":"fun","description":"d","amount":10}`, http.StatusBadRequest},
		{"malformed body", `{"email":`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec, body := doJSON(t, s, "/api/expenses", tc.body)
		if rec.Code != tc.code {
			t.Fatalf("%s: status = %d, want %d", tc.name, rec.Code, tc.code)
		}
		if _, ok := body["error"]; !ok {
			t.Fatalf("%s: expected error field, got %v", tc.name, body)
		}
	}
}

func TestPaydayReturnsNewIncome(t *testing.T) {
	s, _ := newTestServer(t)
	signupTestUser(t, s)

	rec, body := doJSON(t, s, "/api/payday", `{"email":"asha@example.com","newIncome":60000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true || body["income"] != float64(60000) {
		t.Fatalf("unexpected payday response: %v", body)
	}
}

func TestUserDataRoundTrip(t *testing.T) {
	s, _ := newTestServer(t)
	signupTestUser(t, s)

	rec, _ := doJSON(t, s, "/api/expenses",
		`{"email":"asha@example.com","reason":"sip","category":"investment","description":"fund","amount":1000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add expense status = %d", rec.Code)
	}

	rec, body := doJSON(t, s, "/api/userdata", `{"email":"asha@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("userdata status = %d, body %s", rec.Code, rec.Body.String())
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("missing user object: %v", body)
	}
	if user["monthInvestment"] != float64(1000) {
		t.Fatalf("monthInvestment = %v, want 1000", user["monthInvestment"])
	}
	expenses, ok := body["expenses"].([]any)
	if !ok || len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %v", body["expenses"])
	}
}

func TestUserDataCacheInvalidatedByMutation(t *testing.T) {
	s, _ := newTestServer(t)
	signupTestUser(t, s)

	// Prime the cache.
	if rec, _ := doJSON(t, s, "/api/userdata", `{"email":"asha@example.com"}`); rec.Code != http.StatusOK {
		t.Fatalf("prime status = %d", rec.Code)
	}

	rec, _ := doJSON(t, s, "/api/expenses",
		`{"email":"asha@example.com","reason":"r","category":"savings","description":"d","amount":500}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add expense status = %d", rec.Code)
	}

	_, body := doJSON(t, s, "/api/userdata", `{"email":"asha@example.com"}`)
	user := body["user"].(map[string]any)
	if user["monthSavings"] != float64(500) {
		t.Fatalf("stale cache served: monthSavings = %v, want 500", user["monthSavings"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
