package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillconnect/internal/config"
	"skillconnect/internal/infrastructure/database/memory"
	"skillconnect/internal/infrastructure/otpstore"
	"skillconnect/internal/notification"
	"skillconnect/internal/sms"
	appErrors "skillconnect/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	customerPhone = "08031234567"
	workerPhone   = "+2348059876543"
)

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Errors  []appErrors.FieldError `json:"errors"`
}

type testAPI struct {
	t      *testing.T
	router *Router
	store  *memory.Store
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		JWT:    config.JWTConfig{Secret: "router-test-secret", ExpiryHours: 1},
		OTP:    config.OTPConfig{TTL: 5 * time.Minute, Length: 6, ExposeInDemo: true},
		RateLimit: config.RateLimitConfig{
			GeneralRPS: 1000, GeneralBurst: 1000,
			AuthRPS: 1000, AuthBurst: 1000,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
	}
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	notifiers := notification.NewMulti(notification.NewLogNotifier())
	router := SetupRoutes(testConfig(), &Dependencies{
		Users:    store.Users,
		Bookings: store.Bookings,
		Reviews:  store.Reviews,
		OTPs:     otpstore.New(),
		SMS:      sms.NewLogSender(),
		Notifier: notifiers,
		Metrics:  notifiers.Metrics(),
	})
	t.Cleanup(router.Close)

	return &testAPI{t: t, router: router, store: store}
}

func (a *testAPI) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

type loginResult struct {
	Token     string `json:"token"`
	IsNewUser bool   `json:"isNewUser"`
	User      struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"user"`
}

func (a *testAPI) login(phone string) loginResult {
	a.t.Helper()

	status, env := a.do(http.MethodPost, "/api/auth/send-otp", "", map[string]string{"phone": phone})
	require.Equal(a.t, http.StatusOK, status, env.Message)
	sent := decode[struct {
		Code string `json:"code"`
	}](a.t, env.Data)
	require.NotEmpty(a.t, sent.Code)

	status, env = a.do(http.MethodPost, "/api/auth/verify-otp", "", map[string]string{"phone": phone, "otp": sent.Code})
	require.Equal(a.t, http.StatusOK, status, env.Message)
	return decode[loginResult](a.t, env.Data)
}

func (a *testAPI) registerWorker() loginResult {
	a.t.Helper()
	a.login(workerPhone)

	status, env := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"phone":      workerPhone,
		"name":       "Emeka Okafor",
		"email":      "emeka@example.com",
		"type":       "worker",
		"category":   "plumber",
		"skills":     []string{"pipe repair"},
		"experience": 5,
		"hourlyRate": 3500,
		"location": map[string]any{
			"address": "12 Allen Avenue", "city": "Ikeja", "state": "Lagos",
			"latitude": 6.6018, "longitude": 3.3515,
		},
	})
	require.Equal(a.t, http.StatusCreated, status, env.Message)
	return decode[loginResult](a.t, env.Data)
}

func bookingBody(workerID string) map[string]any {
	return map[string]any{
		"workerId":      workerID,
		"title":         "Fix kitchen sink",
		"description":   "The kitchen sink has been leaking since Monday",
		"scheduledDate": "2026-11-02",
		"scheduledTime": "10:00",
		"location": map[string]any{
			"address": "4 Adeola Odeku", "latitude": 6.4281, "longitude": 3.4219,
		},
	}
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.Contains(t, w.Body.String(), "eventsDispatched")
}

func TestOTPLogin_NewUserThenCodeIsSpent(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.do(http.MethodPost, "/api/auth/send-otp", "", map[string]string{"phone": customerPhone})
	require.Equal(t, http.StatusOK, status)
	code := decode[struct {
		Code string `json:"code"`
	}](t, env.Data).Code

	status, env = api.do(http.MethodPost, "/api/auth/verify-otp", "", map[string]string{"phone": customerPhone, "otp": code})
	require.Equal(t, http.StatusOK, status)
	first := decode[loginResult](t, env.Data)
	assert.True(t, first.IsNewUser)
	assert.NotEmpty(t, first.Token)
	assert.Equal(t, "customer", first.User.Type)

	status, env = api.do(http.MethodPost, "/api/auth/verify-otp", "", map[string]string{"phone": customerPhone, "otp": code})
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)

	second := api.login(customerPhone)
	assert.False(t, second.IsNewUser)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestSendOTP_InvalidPhone(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.do(http.MethodPost, "/api/auth/send-otp", "", map[string]string{"phone": "12345"})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "phone", env.Errors[0].Field)
}

func TestMe(t *testing.T) {
	api := newTestAPI(t)
	customer := api.login(customerPhone)

	status, _ := api.do(http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := api.do(http.MethodGet, "/api/users/me", customer.Token, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[struct {
		ID    string `json:"id"`
		Phone string `json:"phone"`
	}](t, env.Data)
	assert.Equal(t, customer.User.ID, me.ID)
	assert.Equal(t, "+2348031234567", me.Phone)
}

func TestBooking_BusyWorkerIsRejected(t *testing.T) {
	api := newTestAPI(t)
	worker := api.registerWorker()
	customer := api.login(customerPhone)

	status, env := api.do(http.MethodPatch, "/api/workers/me/availability", customer.Token, map[string]string{"availability": "busy"})
	assert.Equal(t, http.StatusForbidden, status, env.Message)

	status, env = api.do(http.MethodPatch, "/api/workers/me/availability", worker.Token, map[string]string{"availability": "busy"})
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = api.do(http.MethodPost, "/api/bookings", customer.Token, bookingBody(worker.User.ID))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)

	status, env = api.do(http.MethodGet, "/api/bookings/user/"+customer.User.ID, customer.Token, nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[struct {
		Bookings []json.RawMessage `json:"bookings"`
	}](t, env.Data)
	assert.Empty(t, list.Bookings)
}

func TestBooking_CompleteThenCancelConflicts(t *testing.T) {
	api := newTestAPI(t)
	worker := api.registerWorker()
	customer := api.login(customerPhone)

	status, env := api.do(http.MethodPost, "/api/bookings", customer.Token, bookingBody(worker.User.ID))
	require.Equal(t, http.StatusCreated, status, env.Message)
	created := decode[struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}](t, env.Data)
	assert.Equal(t, "pending", created.Status)

	path := "/api/bookings/" + created.ID
	for _, next := range []string{"accepted", "in_progress", "completed"} {
		status, env = api.do(http.MethodPatch, path+"/status", worker.Token, map[string]string{"status": next})
		require.Equal(t, http.StatusOK, status, "%s: %s", next, env.Message)
	}
	done := decode[struct {
		Status      string     `json:"status"`
		CompletedAt *time.Time `json:"completedAt"`
	}](t, env.Data)
	assert.Equal(t, "completed", done.Status)
	assert.NotNil(t, done.CompletedAt)

	status, env = api.do(http.MethodDelete, path, customer.Token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)

	status, env = api.do(http.MethodGet, path, customer.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completed", decode[struct {
		Status string `json:"status"`
	}](t, env.Data).Status)
}

func TestBooking_CancelWithReason(t *testing.T) {
	api := newTestAPI(t)
	worker := api.registerWorker()
	customer := api.login(customerPhone)

	_, env := api.do(http.MethodPost, "/api/bookings", customer.Token, bookingBody(worker.User.ID))
	id := decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID

	status, env := api.do(http.MethodDelete, "/api/bookings/"+id, customer.Token, map[string]string{"reason": "Found someone closer"})
	require.Equal(t, http.StatusOK, status, env.Message)
	cancelled := decode[struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}](t, env.Data)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, "Found someone closer", cancelled.Reason)
}

func TestBooking_OutsidersAreForbidden(t *testing.T) {
	api := newTestAPI(t)
	worker := api.registerWorker()
	customer := api.login(customerPhone)
	outsider := api.login("07061112222")

	_, env := api.do(http.MethodPost, "/api/bookings", customer.Token, bookingBody(worker.User.ID))
	id := decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID

	status, _ := api.do(http.MethodGet, "/api/bookings/"+id, outsider.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.do(http.MethodGet, "/api/bookings/user/"+customer.User.ID, outsider.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.do(http.MethodGet, "/api/bookings/not-a-uuid", customer.Token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestWorkers_PublicDirectory(t *testing.T) {
	api := newTestAPI(t)
	worker := api.registerWorker()

	status, env := api.do(http.MethodGet, "/api/workers?category=plumber&near=6.60,3.35&radiusKm=5", "", nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	list := decode[struct {
		Workers []struct {
			ID         string   `json:"id"`
			DistanceKm *float64 `json:"distanceKm"`
		} `json:"workers"`
	}](t, env.Data)
	require.Len(t, list.Workers, 1)
	assert.Equal(t, worker.User.ID, list.Workers[0].ID)
	assert.NotNil(t, list.Workers[0].DistanceKm)

	status, _ = api.do(http.MethodGet, "/api/workers/"+worker.User.ID, "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = api.do(http.MethodGet, "/api/workers/featured/list?limit=3", "", nil)
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = api.do(http.MethodGet, "/api/workers/categories/stats", "", nil)
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = api.do(http.MethodGet, "/api/reviews/worker/"+worker.User.ID, "", nil)
	require.Equal(t, http.StatusOK, status, env.Message)

	status, _ = api.do(http.MethodGet, "/api/workers?page=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRefreshToken(t *testing.T) {
	api := newTestAPI(t)
	customer := api.login(customerPhone)

	status, env := api.do(http.MethodPost, "/api/auth/refresh-token", "", map[string]string{"token": customer.Token})
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.NotEmpty(t, decode[struct {
		Token string `json:"token"`
	}](t, env.Data).Token)

	status, _ = api.do(http.MethodPost, "/api/auth/refresh-token", "", map[string]string{"token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, status)
}
