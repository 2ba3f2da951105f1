package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkout-service/controllers"
	"checkout-service/models"
	"checkout-service/routes"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// ---- concrete mock implementing services.OrderService ----

type mockOrderSvc struct {
	handleCalls int
	lastPayload []byte
	lastSig     string
	handleErr   *services.ServiceError
	status      *models.OrderStatus
	statusErr   *services.ServiceError
}

func (m *mockOrderSvc) HandleEvent(_ context.Context, payload []byte, sigHeader string) *services.ServiceError {
	m.handleCalls++
	m.lastPayload = payload
	m.lastSig = sigHeader
	return m.handleErr
}

func (m *mockOrderSvc) GetOrderStatus(_ context.Context, sessionID string) (*models.OrderStatus, *services.ServiceError) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.status, nil
}

// ---- helpers ----

func setupOrderRouter(svc services.OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cc := controllers.NewCheckoutController(&mockCheckoutSvc{}, zap.NewNop())
	oc := controllers.NewOrderController(svc, zap.NewNop())
	routes.RegisterRoutes(r, cc, oc)
	return r
}

func postWebhook(r *gin.Engine, body []byte, sig string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	if sig != "" {
		req.Header.Set("Stripe-Signature", sig)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestStripeWebhook_MissingSignature(t *testing.T) {
	svc := &mockOrderSvc{}
	r := setupOrderRouter(svc)

	w := postWebhook(r, []byte(`{}`), "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, svc.handleCalls)
}

func TestStripeWebhook_PassesRawBytesAndHeader(t *testing.T) {
	svc := &mockOrderSvc{}
	r := setupOrderRouter(svc)

	body := []byte(`{"id": "evt_1",  "unformatted":true }`)
	w := postWebhook(r, body, "t=1,v1=abc")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Equal(t, body, svc.lastPayload)
	assert.Equal(t, "t=1,v1=abc", svc.lastSig)
}

func TestStripeWebhook_VerificationFailure(t *testing.T) {
	svc := &mockOrderSvc{
		handleErr: &services.ServiceError{StatusCode: http.StatusBadRequest, Message: "invalid webhook signature"},
	}
	r := setupOrderRouter(svc)

	w := postWebhook(r, []byte(`{}`), "t=1,v1=bad")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeWebhook_RecoverableFailure(t *testing.T) {
	svc := &mockOrderSvc{
		handleErr: &services.ServiceError{StatusCode: http.StatusBadGateway, Message: "payment intent lookup failed"},
	}
	r := setupOrderRouter(svc)

	w := postWebhook(r, []byte(`{}`), "t=1,v1=ok")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetOrder_Success(t *testing.T) {
	svc := &mockOrderSvc{
		status: &models.OrderStatus{Name: "Jane", EventNumber: "000H", Amount: 42.5, PaymentStatus: "paid"},
	}
	r := setupOrderRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/orders/cs_test_123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.OrderStatus
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Jane", resp.Name)
	assert.Equal(t, "000H", resp.EventNumber)
	assert.Equal(t, 42.5, resp.Amount)
	assert.Equal(t, "paid", resp.PaymentStatus)
}

func TestGetOrder_LookupFailure(t *testing.T) {
	svc := &mockOrderSvc{
		statusErr: &services.ServiceError{StatusCode: http.StatusBadGateway, Message: "order lookup failed"},
	}
	r := setupOrderRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/orders/cs_test_123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHealthz(t *testing.T) {
	r := setupOrderRouter(&mockOrderSvc{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
