package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contact-relay/config"
	v1 "contact-relay/internal/delivery/http/v1"
	"contact-relay/internal/delivery/relay"
	"contact-relay/internal/usecase"
	"contact-relay/pkg/cors"
	"contact-relay/pkg/email"
	"contact-relay/pkg/security"
	"contact-relay/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func newRouter(t *testing.T) (*gin.Engine, *MockSender) {
	t.Helper()
	cfg := &config.Config{
		Env:            "test",
		AllowedOrigins: []string{"https://example.com"},
		FromEmail:      "no-reply@example.com",
		ToEmail:        "owner@example.com",
		SubjectPrefix:  "Example",
	}
	sender := new(MockSender)
	uc := usecase.NewContactUsecase(cfg, sender, validation.New(), security.NopLogger())
	policy := cors.NewPolicy(cfg.AllowedOrigins, false, 0)
	r := v1.NewRouter(v1.RouterDeps{
		Relay:  relay.NewHandler(policy, uc, security.NopLogger()),
		Config: cfg,
	})
	return r, sender
}

func do(r http.Handler, method, origin, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/v1/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContact_Scenario_Valid(t *testing.T) {
	r, sender := newRouter(t)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		msg := args.Get(1).(email.Message)
		assert.Contains(t, msg.Subject, "Ann")
		assert.Contains(t, msg.Subject, "Repair")
	}).Once()

	w := do(r, http.MethodPost, "https://example.com",
		`{"name":"Ann","email":"a@x.com","service":"Repair","message":"Hi"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "false", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestContact_Scenario_EmptyName(t *testing.T) {
	r, sender := newRouter(t)

	w := do(r, http.MethodPost, "https://example.com",
		`{"name":"","email":"a@x.com","service":"Repair","message":"Hi"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, w.Body.String())
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestContact_Scenario_EvilOrigin(t *testing.T) {
	r, sender := newRouter(t)

	w := do(r, http.MethodPost, "https://evil.com",
		`{"name":"Ann","email":"a@x.com","service":"Repair","message":"Hi"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Forbidden origin"}`, w.Body.String())
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	pre := do(r, http.MethodOptions, "https://evil.com", "")
	assert.Equal(t, http.StatusForbidden, pre.Code)
	assert.Empty(t, pre.Header().Get("Access-Control-Allow-Origin"))

	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestContact_Preflight(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodOptions, "https://example.com", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST,OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestContact_MethodNotAllowed(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodGet, "https://example.com", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, w.Body.String())
}

func TestContact_OversizedBody(t *testing.T) {
	r, sender := newRouter(t)

	big := `{"name":"Ann","email":"a@x.com","service":"Repair","message":"` + strings.Repeat("x", 70<<10) + `"}`
	w := do(r, http.MethodPost, "https://example.com", big)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON"}`, w.Body.String())
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestHealth(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestIDIsReused(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.Header.Set("X-Request-ID", "2f1c3f8e-2b1a-4a1e-9d2a-6f2c1b3a4d5e")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "2f1c3f8e-2b1a-4a1e-9d2a-6f2c1b3a4d5e", w.Header().Get("X-Request-ID"))
}
