package wire

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pitch-booking/internal/data/repository"
	"pitch-booking/pkg/apiclient"
	"pitch-booking/pkg/middleware"
	"pitch-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	return newTestAppWithStorage(t, repository.NewMemoryStorage())
}

func newTestAppWithStorage(t *testing.T, storage repository.StorageRepository) *App {
	t.Helper()

	remote := http.NewServeMux()
	remote.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"manager-token","user":{"id":"g1","name":"Gestion","role":"manager"}}`))
	})
	remote.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer customer-token" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Unauthorized"}`))
			return
		}
		w.Write([]byte(`{"user":{"id":"c1","name":"Client","role":"customer"}}`))
	})
	remote.HandleFunc("/reservations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	remote.HandleFunc("/fields", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	api := httptest.NewServer(remote)
	t.Cleanup(api.Close)

	logger := zaptest.NewLogger(t)
	config := &utils.Config{
		App:     utils.AppConfig{CORSOrigins: []string{"http://localhost:5173"}},
		Booking: utils.BookingConfig{PhoneCountryCode: "+221"},
	}
	client := apiclient.New(api.URL, 5*time.Second, logger)
	repo := repository.NewRepository(client, storage, logger)

	return Wiring(repo, config, logger)
}

func visitorCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.VisitorCookie {
			return c
		}
	}
	t.Fatal("no visitor cookie issued")
	return nil
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestVisitorCookieIssuedOnce(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/booking", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("booking = %d: %s", rec.Code, rec.Body.String())
	}
	cookie := visitorCookie(t, rec)
	if !cookie.HttpOnly {
		t.Error("visitor cookie readable from scripts")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/booking", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if len(rec.Result().Cookies()) != 0 {
		t.Error("cookie issued again for a known visitor")
	}
}

func TestDashboardRequiresStaff(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("json client = %d", rec.Code)
	}
	var body utils.Response
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body.Status {
		t.Errorf("body = %+v, err = %v", body, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("browser = %d to %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestStoredCustomerTokenSendsBrowserToLogin(t *testing.T) {
	storage := repository.NewMemoryStorage()
	app := newTestAppWithStorage(t, storage)

	sid := uuid.NewString()
	ctx := context.Background()
	storage.Set(ctx, sid, repository.StorageKeyToken, "customer-token")
	storage.Set(ctx, sid, repository.StorageKeyUser, `{"id":"c1","role":"admin"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: middleware.VisitorCookie, Value: sid})
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("dashboard = %d to %q", rec.Code, rec.Header().Get("Location"))
	}
	for _, key := range []string{repository.StorageKeyToken, repository.StorageKeyUser} {
		if _, ok, _ := storage.Get(ctx, sid, key); ok {
			t.Errorf("%s kept after the remote reported a customer", key)
		}
	}
}

func TestManagerLoginOpensDashboard(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session/login",
		strings.NewReader(`{"email":"gestion@pitch.sn","password":"secret1"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}
	cookie := visitorCookie(t, rec)

	do := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		return rec
	}

	if rec := do(http.MethodGet, "/api/dashboard"); rec.Code != http.StatusOK {
		t.Fatalf("dashboard = %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(http.MethodGet, "/api/dashboard/fields"); rec.Code != http.StatusForbidden {
		t.Errorf("manager fields = %d", rec.Code)
	}
	if rec := do(http.MethodPost, "/api/dashboard/reservations/r1/cancel"); rec.Code != http.StatusForbidden {
		t.Errorf("manager cancel = %d", rec.Code)
	}

	if rec := do(http.MethodPost, "/api/session/logout"); rec.Code != http.StatusOK {
		t.Fatalf("logout = %d", rec.Code)
	}
	if rec := do(http.MethodGet, "/api/dashboard"); rec.Code != http.StatusUnauthorized {
		t.Errorf("dashboard after logout = %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/booking", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin = %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("credentials not allowed")
	}
}
