package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
)

type mockRegistrationSvc struct{ mock.Mock }

func (m *mockRegistrationSvc) RequestOTP(ctx context.Context, eventID, emailAddr string) error {
	return m.Called(ctx, eventID, emailAddr).Error(0)
}

func (m *mockRegistrationSvc) Register(ctx context.Context, eventID string, req *domain.RegisterRequest) (*domain.Registration, error) {
	args := m.Called(ctx, eventID, req)
	if reg, _ := args.Get(0).(*domain.Registration); reg != nil {
		return reg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistrationSvc) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	args := m.Called(ctx, eventID)
	if regs, _ := args.Get(0).([]domain.Registration); regs != nil {
		return regs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistrationSvc) UpdateStatus(ctx context.Context, registrationID, status string) error {
	return m.Called(ctx, registrationID, status).Error(0)
}

// withChiID injects a chi URL param "id" into the request context.
func withChiID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestSendOTP_InvalidBody(t *testing.T) {
	h := NewRegistrationHandler(&mockRegistrationSvc{})
	r := withChiID(httptest.NewRequest(http.MethodPost, "/v1/events/e1/send-otp", bytes.NewBufferString("not-json")), "e1")
	rr := httptest.NewRecorder()
	h.SendOTP(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSendOTP_ClosedEvent(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("RequestOTP", mock.Anything, "e1", "visitor@example.com").Return(domain.ErrTargetClosed)
	h := NewRegistrationHandler(svc)
	body, _ := json.Marshal(domain.SendOTPRequest{Email: "visitor@example.com"})
	r := withChiID(httptest.NewRequest(http.MethodPost, "/v1/events/e1/send-otp", bytes.NewReader(body)), "e1")
	rr := httptest.NewRecorder()
	h.SendOTP(rr, r)
	assert.Equal(t, http.StatusConflict, rr.Code)
	svc.AssertExpectations(t)
}

func TestSendOTP_HappyPath(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("RequestOTP", mock.Anything, "e1", "visitor@example.com").Return(nil)
	h := NewRegistrationHandler(svc)
	body, _ := json.Marshal(domain.SendOTPRequest{Email: "visitor@example.com"})
	r := withChiID(httptest.NewRequest(http.MethodPost, "/v1/events/e1/send-otp", bytes.NewReader(body)), "e1")
	rr := httptest.NewRecorder()
	h.SendOTP(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	var resp MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "verification code sent", resp.Message)
}

func TestRegister_BadCodeIsGeneric(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Register", mock.Anything, "e1", mock.Anything).Return(nil, domain.ErrCodeMismatch)
	h := NewRegistrationHandler(svc)
	body, _ := json.Marshal(domain.RegisterRequest{
		Name: "Visitor", Email: "visitor@example.com", OTPCode: "ABC123",
	})
	r := withChiID(httptest.NewRequest(http.MethodPost, "/v1/events/e1/register", bytes.NewReader(body)), "e1")
	rr := httptest.NewRecorder()
	h.Register(rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	// The response must not reveal which way the code failed.
	var resp MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "invalid or expired verification code", resp.Error)
}

func TestRegister_CapacityFull(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Register", mock.Anything, "e1", mock.Anything).Return(nil, domain.ErrCapacityFull)
	h := NewRegistrationHandler(svc)
	body, _ := json.Marshal(domain.RegisterRequest{
		Name: "Visitor", Email: "visitor@example.com", OTPCode: "ABC123",
	})
	r := withChiID(httptest.NewRequest(http.MethodPost, "/v1/events/e1/register", bytes.NewReader(body)), "e1")
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRegister_HappyPath(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("Register", mock.Anything, "e1", mock.Anything).Return(&domain.Registration{
		RegistrationID: "r1", EventID: "e1", Email: "visitor@example.com",
	}, nil)
	h := NewRegistrationHandler(svc)
	body, _ := json.Marshal(domain.RegisterRequest{
		Name: "Visitor", Email: "visitor@example.com", OTPCode: "ABC123",
	})
	r := withChiID(httptest.NewRequest(http.MethodPost, "/v1/events/e1/register", bytes.NewReader(body)), "e1")
	rr := httptest.NewRecorder()
	h.Register(rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var reg domain.Registration
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&reg))
	assert.Equal(t, "r1", reg.RegistrationID)
}

func TestRegister_ValidationFailure(t *testing.T) {
	h := NewRegistrationHandler(&mockRegistrationSvc{})
	body, _ := json.Marshal(domain.RegisterRequest{Name: "Visitor"}) // missing email and code
	r := withChiID(httptest.NewRequest(http.MethodPost, "/v1/events/e1/register", bytes.NewReader(body)), "e1")
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateStatus_UnknownRegistration(t *testing.T) {
	svc := &mockRegistrationSvc{}
	svc.On("UpdateStatus", mock.Anything, "missing", "cancelled").Return(domain.ErrNotFound)
	h := NewRegistrationHandler(svc)
	body, _ := json.Marshal(updateStatusRequest{Status: "cancelled"})
	r := withChiID(httptest.NewRequest(http.MethodPut, "/v1/admin/registrations/missing", bytes.NewReader(body)), "missing")
	rr := httptest.NewRecorder()
	h.UpdateStatus(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
