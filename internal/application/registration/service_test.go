package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/email"
)

type mockEventStore struct{ mock.Mock }

func (m *mockEventStore) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	args := m.Called(ctx, eventID)
	if e, _ := args.Get(0).(*domain.Event); e != nil {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEventStore) IncrementRegistrations(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}
func (m *mockEventStore) DecrementRegistrations(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}

type mockRegStore struct{ mock.Mock }

func (m *mockRegStore) Put(ctx context.Context, reg *domain.Registration) error {
	return m.Called(ctx, reg).Error(0)
}
func (m *mockRegStore) Get(ctx context.Context, registrationID string) (*domain.Registration, error) {
	args := m.Called(ctx, registrationID)
	if r, _ := args.Get(0).(*domain.Registration); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRegStore) FindByEmailAndEvent(ctx context.Context, email, eventID string) (*domain.Registration, error) {
	args := m.Called(ctx, email, eventID)
	if r, _ := args.Get(0).(*domain.Registration); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRegStore) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	args := m.Called(ctx, eventID)
	if rs, _ := args.Get(0).([]domain.Registration); rs != nil {
		return rs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRegStore) Update(ctx context.Context, registrationID string, updates map[string]interface{}) error {
	return m.Called(ctx, registrationID, updates).Error(0)
}

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Issue(ctx context.Context, identifier string, purpose domain.VerificationPurpose) error {
	return m.Called(ctx, identifier, purpose).Error(0)
}
func (m *mockVerifier) Verify(ctx context.Context, identifier string, purpose domain.VerificationPurpose, submitted string) error {
	return m.Called(ctx, identifier, purpose, submitted).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(to string, kind email.TemplateKind, data any) error {
	return m.Called(to, kind, data).Error(0)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

func openEvent() *domain.Event {
	return &domain.Event{
		EventID:         "evt1",
		Title:           "40-Day Meditation Challenge",
		Status:          domain.EventUpcoming,
		MaxParticipants: 100,
	}
}

func registerReq() *domain.RegisterRequest {
	return &domain.RegisterRequest{
		Name:    "Asha",
		Email:   "Asha@Example.com",
		Phone:   "+15550001111",
		OTPCode: "123456",
	}
}

// --- RequestOTP ---

func TestRequestOTP_EventClosed(t *testing.T) {
	events := &mockEventStore{}
	ev := openEvent()
	ev.Status = domain.EventCompleted
	events.On("Get", mock.Anything, "evt1").Return(ev, nil)

	svc := NewService(events, &mockRegStore{}, &mockVerifier{}, &mockMailer{}, nil, false)
	err := svc.RequestOTP(context.Background(), "evt1", "asha@example.com")
	assert.ErrorIs(t, err, domain.ErrTargetClosed)
}

func TestRequestOTP_AlreadyRegistered(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegStore{}
	events.On("Get", mock.Anything, "evt1").Return(openEvent(), nil)
	regs.On("FindByEmailAndEvent", mock.Anything, "asha@example.com", "evt1").
		Return(&domain.Registration{Status: domain.RegistrationConfirmed}, nil)

	svc := NewService(events, regs, &mockVerifier{}, &mockMailer{}, nil, false)
	err := svc.RequestOTP(context.Background(), "evt1", "Asha@Example.com")
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
}

func TestRequestOTP_CancelledRegistrationDoesNotBlock(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegStore{}
	codes := &mockVerifier{}
	events.On("Get", mock.Anything, "evt1").Return(openEvent(), nil)
	regs.On("FindByEmailAndEvent", mock.Anything, "asha@example.com", "evt1").
		Return(&domain.Registration{Status: domain.RegistrationCancelled}, nil)
	codes.On("Issue", mock.Anything, "asha@example.com", domain.PurposeEventRegistration).Return(nil)

	svc := NewService(events, regs, codes, &mockMailer{}, nil, false)
	err := svc.RequestOTP(context.Background(), "evt1", "asha@example.com")
	require.NoError(t, err)
	codes.AssertExpectations(t)
}

// --- Register ---

func TestRegister_BlockedWhenActiveRecordExistsAmongCancelled(t *testing.T) {
	// After cancel and re-register the email has two records; the store
	// surfaces the active one and the third attempt must be refused.
	events := &mockEventStore{}
	regs := &mockRegStore{}
	codes := &mockVerifier{}
	codes.On("Verify", mock.Anything, "asha@example.com", domain.PurposeEventRegistration, "123456").Return(nil)
	events.On("Get", mock.Anything, "evt1").Return(openEvent(), nil)
	regs.On("FindByEmailAndEvent", mock.Anything, "asha@example.com", "evt1").
		Return(&domain.Registration{RegistrationID: "r2", Status: domain.RegistrationConfirmed}, nil)

	svc := NewService(events, regs, codes, &mockMailer{}, &mockSMS{}, false)
	reg, err := svc.Register(context.Background(), "evt1", registerReq())

	assert.Nil(t, reg)
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
	events.AssertNotCalled(t, "IncrementRegistrations", mock.Anything, mock.Anything)
	regs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateLookupFailureSurfaces(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegStore{}
	codes := &mockVerifier{}
	codes.On("Verify", mock.Anything, "asha@example.com", domain.PurposeEventRegistration, "123456").Return(nil)
	events.On("Get", mock.Anything, "evt1").Return(openEvent(), nil)
	regs.On("FindByEmailAndEvent", mock.Anything, "asha@example.com", "evt1").
		Return(nil, errors.New("throttled"))

	svc := NewService(events, regs, codes, &mockMailer{}, &mockSMS{}, false)
	reg, err := svc.Register(context.Background(), "evt1", registerReq())

	assert.Nil(t, reg)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateEntry)
	events.AssertNotCalled(t, "IncrementRegistrations", mock.Anything, mock.Anything)
	regs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRegister_InvalidCode(t *testing.T) {
	codes := &mockVerifier{}
	codes.On("Verify", mock.Anything, "asha@example.com", domain.PurposeEventRegistration, "123456").
		Return(domain.ErrCodeMismatch)

	svc := NewService(&mockEventStore{}, &mockRegStore{}, codes, &mockMailer{}, nil, false)
	reg, err := svc.Register(context.Background(), "evt1", registerReq())
	assert.Nil(t, reg)
	assert.True(t, errors.Is(err, domain.ErrVerification))
}

func TestRegister_CapacityFull(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegStore{}
	codes := &mockVerifier{}
	codes.On("Verify", mock.Anything, "asha@example.com", domain.PurposeEventRegistration, "123456").Return(nil)
	events.On("Get", mock.Anything, "evt1").Return(openEvent(), nil)
	regs.On("FindByEmailAndEvent", mock.Anything, "asha@example.com", "evt1").Return(nil, domain.ErrNotFound)
	events.On("IncrementRegistrations", mock.Anything, "evt1").Return(domain.ErrCapacityFull)

	svc := NewService(events, regs, codes, &mockMailer{}, nil, false)
	reg, err := svc.Register(context.Background(), "evt1", registerReq())
	assert.Nil(t, reg)
	assert.ErrorIs(t, err, domain.ErrCapacityFull)
	regs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRegister_HappyPath_SendsNotifications(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegStore{}
	codes := &mockVerifier{}
	mailer := &mockMailer{}
	sms := &mockSMS{}

	codes.On("Verify", mock.Anything, "asha@example.com", domain.PurposeEventRegistration, "123456").Return(nil)
	events.On("Get", mock.Anything, "evt1").Return(openEvent(), nil)
	regs.On("FindByEmailAndEvent", mock.Anything, "asha@example.com", "evt1").Return(nil, domain.ErrNotFound)
	events.On("IncrementRegistrations", mock.Anything, "evt1").Return(nil)
	regs.On("Put", mock.Anything, mock.AnythingOfType("*domain.Registration")).Return(nil)
	mailer.On("Send", "asha@example.com", email.TemplateRegistrationConfirmed, mock.Anything).Return(nil)
	sms.On("SendSMS", mock.Anything, "+15550001111", mock.Anything).Return(nil)

	svc := NewService(events, regs, codes, mailer, sms, true)
	reg, err := svc.Register(context.Background(), "evt1", registerReq())

	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.NotEmpty(t, reg.RegistrationID)
	assert.Equal(t, "asha@example.com", reg.Email)
	assert.Equal(t, domain.RegistrationConfirmed, reg.Status)
	mailer.AssertExpectations(t)
	sms.AssertExpectations(t)
}

func TestRegister_NotificationFailureDoesNotFailRegistration(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegStore{}
	codes := &mockVerifier{}
	mailer := &mockMailer{}

	codes.On("Verify", mock.Anything, mock.Anything, domain.PurposeEventRegistration, mock.Anything).Return(nil)
	events.On("Get", mock.Anything, "evt1").Return(openEvent(), nil)
	regs.On("FindByEmailAndEvent", mock.Anything, mock.Anything, "evt1").Return(nil, domain.ErrNotFound)
	events.On("IncrementRegistrations", mock.Anything, "evt1").Return(nil)
	regs.On("Put", mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, email.TemplateRegistrationConfirmed, mock.Anything).Return(errors.New("smtp down"))

	svc := NewService(events, regs, codes, mailer, nil, false)
	reg, err := svc.Register(context.Background(), "evt1", registerReq())
	require.NoError(t, err)
	assert.NotNil(t, reg)
}

func TestRegister_PutFailureReleasesSeat(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegStore{}
	codes := &mockVerifier{}

	codes.On("Verify", mock.Anything, mock.Anything, domain.PurposeEventRegistration, mock.Anything).Return(nil)
	events.On("Get", mock.Anything, "evt1").Return(openEvent(), nil)
	regs.On("FindByEmailAndEvent", mock.Anything, mock.Anything, "evt1").Return(nil, domain.ErrNotFound)
	events.On("IncrementRegistrations", mock.Anything, "evt1").Return(nil)
	regs.On("Put", mock.Anything, mock.Anything).Return(errors.New("throttled"))
	events.On("DecrementRegistrations", mock.Anything, "evt1").Return(nil)

	svc := NewService(events, regs, codes, &mockMailer{}, nil, false)
	_, err := svc.Register(context.Background(), "evt1", registerReq())
	require.Error(t, err)
	events.AssertCalled(t, "DecrementRegistrations", mock.Anything, "evt1")
}

// --- UpdateStatus ---

func TestUpdateStatus_CancelFreesSeat(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegStore{}
	regs.On("Get", mock.Anything, "reg1").
		Return(&domain.Registration{RegistrationID: "reg1", EventID: "evt1", Status: domain.RegistrationConfirmed}, nil)
	regs.On("Update", mock.Anything, "reg1", mock.Anything).Return(nil)
	events.On("DecrementRegistrations", mock.Anything, "evt1").Return(nil)

	svc := NewService(events, regs, &mockVerifier{}, &mockMailer{}, nil, false)
	err := svc.UpdateStatus(context.Background(), "reg1", domain.RegistrationCancelled)
	require.NoError(t, err)
	events.AssertCalled(t, "DecrementRegistrations", mock.Anything, "evt1")
}

func TestUpdateStatus_ReinstatingCancelledReclaimsSeat(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegStore{}
	regs.On("Get", mock.Anything, "reg1").
		Return(&domain.Registration{RegistrationID: "reg1", EventID: "evt1", Status: domain.RegistrationCancelled}, nil)
	events.On("IncrementRegistrations", mock.Anything, "evt1").Return(nil)
	regs.On("Update", mock.Anything, "reg1", mock.Anything).Return(nil)

	svc := NewService(events, regs, &mockVerifier{}, &mockMailer{}, nil, false)
	err := svc.UpdateStatus(context.Background(), "reg1", domain.RegistrationConfirmed)
	require.NoError(t, err)
	events.AssertCalled(t, "IncrementRegistrations", mock.Anything, "evt1")
}

func TestUpdateStatus_ReinstatingIntoFullEvent(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegStore{}
	regs.On("Get", mock.Anything, "reg1").
		Return(&domain.Registration{RegistrationID: "reg1", EventID: "evt1", Status: domain.RegistrationCancelled}, nil)
	events.On("IncrementRegistrations", mock.Anything, "evt1").Return(domain.ErrCapacityFull)

	svc := NewService(events, regs, &mockVerifier{}, &mockMailer{}, nil, false)
	err := svc.UpdateStatus(context.Background(), "reg1", domain.RegistrationConfirmed)
	assert.ErrorIs(t, err, domain.ErrCapacityFull)
	regs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc := NewService(&mockEventStore{}, &mockRegStore{}, &mockVerifier{}, &mockMailer{}, nil, false)
	err := svc.UpdateStatus(context.Background(), "reg1", "waitlisted")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
