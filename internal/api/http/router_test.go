package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/hotel-front/internal/api/http/handlers"
	"github.com/spec-kit/hotel-front/internal/authflow"
	"github.com/spec-kit/hotel-front/internal/credstore"
	"github.com/spec-kit/hotel-front/internal/events"
	"github.com/spec-kit/hotel-front/internal/identity"
	"github.com/spec-kit/hotel-front/internal/session"
	"github.com/spec-kit/hotel-front/internal/upstream"
)

// fakeBookingAPI stands in for the remote booking API. It accepts the fixed
// test accounts and serves bookings only to a bearer token it issued;
// rejectTokens simulates upstream-side credential expiry.
type fakeBookingAPI struct {
	mu           sync.Mutex
	rejectTokens bool
}

func (f *fakeBookingAPI) rejecting(v bool) {
	f.mu.Lock()
	f.rejectTokens = v
	f.mu.Unlock()
}

func (f *fakeBookingAPI) handler() http.Handler {
	mux := http.NewServeMux()

	login := func(profile identity.Profile, token string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Mail     string `json:"mail"`
				Password string `json:"password"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Password != "pw" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(upstream.AuthResponse{Token: token, User: profile})
		}
	}
	mux.HandleFunc("/customer-auth/login", login(
		identity.Profile{ID: "c-1", FullName: "Guest", Mail: "guest@example.com", Role: identity.RoleCustomer},
		"cust-tok"))
	mux.HandleFunc("/auth/login", login(
		identity.Profile{ID: "u-1", FullName: "Manager", Mail: "manager@example.com", Role: identity.RoleAdmin},
		"staff-tok"))

	authorized := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			reject := f.rejectTokens
			f.mu.Unlock()
			auth := r.Header.Get("Authorization")
			if reject || !strings.HasPrefix(auth, "Bearer ") {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]upstream.Room{{ID: "r-1", Title: "Garden Suite"}})
	})
	mux.HandleFunc("/bookings/by-customer/", authorized(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]upstream.Booking{{ID: "b-1", RoomID: "r-1"}})
	}))
	mux.HandleFunc("/bookings", authorized(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]upstream.Booking{})
	}))
	mux.HandleFunc("/customers", authorized(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]upstream.Customer{})
	}))

	return mux
}

func newTestApp(t *testing.T) (*fiber.App, *fakeBookingAPI) {
	t.Helper()
	return newTestAppWithLogger(t, zap.NewNop())
}

func newTestAppWithLogger(t *testing.T, logger *zap.Logger) (*fiber.App, *fakeBookingAPI) {
	t.Helper()
	api := &fakeBookingAPI{}
	server := httptest.NewServer(api.handler())
	t.Cleanup(server.Close)

	store, err := credstore.NewSQLiteStore(filepath.Join(t.TempDir(), "creds.db"), time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	registry := session.NewRegistry(store, logger)
	dispatcher := events.NewInMemoryDispatcher()
	cookies := session.NewCookieManager("test-secret", time.Hour)
	authorizer := upstream.NewAuthorizer(nil, registry, dispatcher, nil, logger, "")
	client, err := upstream.NewClient(server.URL, authorizer, 5*time.Second, logger)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	flows := authflow.New(client, registry, dispatcher, logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, cookies, registry, false, 10*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:       handlers.NewHealthHandler(store),
		StaffAuth:    handlers.NewAuthHandler(flows, cookies, false, identity.Staff),
		CustomerAuth: handlers.NewAuthHandler(flows, cookies, false, identity.Customer),
		Rooms:        handlers.NewRoomsHandler(client),
		Bookings:     handlers.NewBookingsHandler(client),
		Admin:        handlers.NewAdminHandler(client),
	})
	return app, api
}

func doJSON(t *testing.T, app *fiber.App, method, path, cookie string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}
	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c.Value
		}
	}
	t.Fatal("response carried no session cookie")
	return ""
}

func loginCustomer(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/login", "", fiber.Map{"mail": "guest@example.com", "password": "pw"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("customer login status = %d", resp.StatusCode)
	}
	return sessionCookie(t, resp)
}

func TestPublicRoutesNeedNoSession(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/health/live", "/rooms", "/home"} {
		resp := doJSON(t, app, fiber.MethodGet, path, "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestGuardRedirectsUnauthenticated(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{fiber.MethodGet, "/admin/dashboard", "/admin/login"},
		{fiber.MethodGet, "/admin/users", "/admin/login"},
		{fiber.MethodGet, "/my-bookings", "/login"},
		{fiber.MethodPost, "/my-bookings", "/login"},
	}
	for _, tt := range tests {
		resp := doJSON(t, app, tt.method, tt.path, "", nil)
		if resp.StatusCode != http.StatusSeeOther {
			t.Errorf("%s %s = %d, want 303", tt.method, tt.path, resp.StatusCode)
			continue
		}
		if loc := resp.Header.Get("Location"); loc != tt.want {
			t.Errorf("%s %s redirects to %q, want %q", tt.method, tt.path, loc, tt.want)
		}
	}
}

func TestCustomerLoginOpensCustomerArea(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := loginCustomer(t, app)

	resp := doJSON(t, app, fiber.MethodGet, "/my-bookings", cookie, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /my-bookings = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Data struct {
			Customer identity.Profile  `json:"customer"`
			Bookings []upstream.Booking `json:"bookings"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Customer.ID != "c-1" || len(body.Data.Bookings) != 1 {
		t.Errorf("body = %+v", body.Data)
	}
}

func TestCustomerSessionDoesNotOpenAdmin(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := loginCustomer(t, app)

	resp := doJSON(t, app, fiber.MethodGet, "/admin/dashboard", cookie, nil)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("GET /admin/dashboard = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin/login" {
		t.Errorf("Location = %q, want /admin/login", loc)
	}
}

func TestStaffLoginReportsDestination(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/admin/login", "", fiber.Map{"mail": "manager@example.com", "password": "pw"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("staff login = %d", resp.StatusCode)
	}
	var body struct {
		Data struct {
			Authenticated bool   `json:"authenticated"`
			RedirectTo    string `json:"redirectTo"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Data.Authenticated || body.Data.RedirectTo != "/admin/dashboard" {
		t.Errorf("body = %+v", body.Data)
	}
}

func TestRejectedLoginStaysUnauthenticated(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/login", "", fiber.Map{"mail": "guest@example.com", "password": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("rejected login = %d, want 401", resp.StatusCode)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "INVALID_CREDENTIALS" {
		t.Errorf("error code = %q, want INVALID_CREDENTIALS", body.Error.Code)
	}

	cookie := sessionCookie(t, resp)
	guarded := doJSON(t, app, fiber.MethodGet, "/my-bookings", cookie, nil)
	if guarded.StatusCode != http.StatusSeeOther {
		t.Errorf("GET /my-bookings after failed login = %d, want 303", guarded.StatusCode)
	}
}

func TestStaleCredentialRedirectsToLogin(t *testing.T) {
	app, api := newTestApp(t)
	cookie := loginCustomer(t, app)

	// Upstream starts rejecting the token mid-session.
	api.rejecting(true)

	resp := doJSON(t, app, fiber.MethodGet, "/my-bookings", cookie, nil)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("GET /my-bookings with stale token = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	// The session was invalidated, so the guard now blocks even before
	// the upstream is consulted.
	api.rejecting(false)
	resp = doJSON(t, app, fiber.MethodGet, "/my-bookings", cookie, nil)
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("GET /my-bookings after invalidation = %d, want 303", resp.StatusCode)
	}
}

func TestLogoutClosesCustomerArea(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := loginCustomer(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/logout", cookie, nil)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("POST /logout = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	resp = doJSON(t, app, fiber.MethodGet, "/my-bookings", cookie, nil)
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("GET /my-bookings after logout = %d, want 303", resp.StatusCode)
	}
}

func TestRequestLoggerSeesMappedStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app, _ := newTestAppWithLogger(t, zap.New(core))

	resp := doJSON(t, app, fiber.MethodPost, "/login", "", fiber.Map{"mail": "guest@example.com", "password": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("rejected login = %d, want 401", resp.StatusCode)
	}

	var logged int64 = -1
	for _, entry := range logs.All() {
		if entry.Message != "request" {
			continue
		}
		if status, ok := entry.ContextMap()["status"].(int64); ok {
			logged = status
		}
	}
	if logged != http.StatusUnauthorized {
		t.Errorf("request log carried status %d, want 401", logged)
	}
}

func TestLoginRestartsSessionCookie(t *testing.T) {
	app, _ := newTestApp(t)

	// First anonymous visit mints the cookie.
	first := doJSON(t, app, fiber.MethodGet, "/home", "", nil)
	anon := sessionCookie(t, first)

	// Logging in with that cookie re-issues it so its lifetime restarts
	// alongside the stored credential's.
	resp := doJSON(t, app, fiber.MethodPost, "/login", anon, fiber.Map{"mail": "guest@example.com", "password": "pw"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login = %d", resp.StatusCode)
	}
	refreshed := sessionCookie(t, resp)

	// The refreshed cookie still resolves the authenticated session.
	guarded := doJSON(t, app, fiber.MethodGet, "/my-bookings", refreshed, nil)
	if guarded.StatusCode != http.StatusOK {
		t.Errorf("GET /my-bookings with refreshed cookie = %d, want 200", guarded.StatusCode)
	}
}

func TestSessionSurvivesRegistryRestartViaStore(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := loginCustomer(t, app)

	// A tampered cookie is treated as absent and gets replaced.
	resp := doJSON(t, app, fiber.MethodGet, "/my-bookings", cookie+"x", nil)
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("tampered cookie = %d, want 303 to login", resp.StatusCode)
	}
	if fresh := sessionCookie(t, resp); fresh == cookie+"x" {
		t.Error("tampered cookie was not replaced")
	}

	// The genuine cookie still works.
	resp = doJSON(t, app, fiber.MethodGet, "/my-bookings", cookie, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("genuine cookie = %d, want 200", resp.StatusCode)
	}
}
