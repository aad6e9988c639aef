package volunteer

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

type mockOppStore struct{ mock.Mock }

func (m *mockOppStore) Put(ctx context.Context, o *domain.VolunteerOpportunity) error {
	return m.Called(ctx, o).Error(0)
}
func (m *mockOppStore) Get(ctx context.Context, opportunityID string) (*domain.VolunteerOpportunity, error) {
	args := m.Called(ctx, opportunityID)
	if o, _ := args.Get(0).(*domain.VolunteerOpportunity); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOppStore) ListByStatus(ctx context.Context, status string) ([]domain.VolunteerOpportunity, error) {
	args := m.Called(ctx, status)
	if os, _ := args.Get(0).([]domain.VolunteerOpportunity); os != nil {
		return os, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOppStore) Scan(ctx context.Context) ([]domain.VolunteerOpportunity, error) {
	args := m.Called(ctx)
	if os, _ := args.Get(0).([]domain.VolunteerOpportunity); os != nil {
		return os, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOppStore) Update(ctx context.Context, opportunityID string, updates map[string]interface{}) error {
	return m.Called(ctx, opportunityID, updates).Error(0)
}
func (m *mockOppStore) IncrementApplications(ctx context.Context, opportunityID string) error {
	return m.Called(ctx, opportunityID).Error(0)
}
func (m *mockOppStore) DecrementApplications(ctx context.Context, opportunityID string) error {
	return m.Called(ctx, opportunityID).Error(0)
}
func (m *mockOppStore) Delete(ctx context.Context, opportunityID string) error {
	return m.Called(ctx, opportunityID).Error(0)
}

type mockVolAppStore struct{ mock.Mock }

func (m *mockVolAppStore) Put(ctx context.Context, a *domain.VolunteerApplication) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockVolAppStore) Get(ctx context.Context, applicationID string) (*domain.VolunteerApplication, error) {
	args := m.Called(ctx, applicationID)
	if a, _ := args.Get(0).(*domain.VolunteerApplication); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockVolAppStore) FindByEmailAndOpportunity(ctx context.Context, email, opportunityID string) (*domain.VolunteerApplication, error) {
	args := m.Called(ctx, email, opportunityID)
	if a, _ := args.Get(0).(*domain.VolunteerApplication); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockVolAppStore) ListByOpportunity(ctx context.Context, opportunityID string) ([]domain.VolunteerApplication, error) {
	args := m.Called(ctx, opportunityID)
	if as, _ := args.Get(0).([]domain.VolunteerApplication); as != nil {
		return as, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockVolAppStore) Update(ctx context.Context, applicationID string, updates map[string]interface{}) error {
	return m.Called(ctx, applicationID, updates).Error(0)
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

func openOpp() *domain.VolunteerOpportunity {
	return &domain.VolunteerOpportunity{
		OpportunityID: "opp1",
		Title:         "Retreat Kitchen Support",
		Status:        domain.OpportunityOpen,
		MaxVolunteers: 5,
	}
}

func applyReq() *domain.VolunteerApplyRequest {
	return &domain.VolunteerApplyRequest{
		Name:    "Mira",
		Email:   "Mira@Example.com",
		Skills:  "cooking",
		OTPCode: "123456",
	}
}

func TestRequestOTP_ClosedOpportunity(t *testing.T) {
	opps := &mockOppStore{}
	opp := openOpp()
	opp.Status = domain.OpportunityClosed
	opps.On("Get", mock.Anything, "opp1").Return(opp, nil)

	svc := NewService(opps, &mockVolAppStore{}, &mockVerifier{}, &mockMailer{})
	err := svc.RequestOTP(context.Background(), "opp1", "mira@example.com")
	assert.ErrorIs(t, err, domain.ErrTargetClosed)
}

func TestRequestOTP_Duplicate(t *testing.T) {
	opps := &mockOppStore{}
	apps := &mockVolAppStore{}
	opps.On("Get", mock.Anything, "opp1").Return(openOpp(), nil)
	apps.On("FindByEmailAndOpportunity", mock.Anything, "mira@example.com", "opp1").
		Return(&domain.VolunteerApplication{Status: domain.VolunteerPending}, nil)

	svc := NewService(opps, apps, &mockVerifier{}, &mockMailer{})
	err := svc.RequestOTP(context.Background(), "opp1", "Mira@Example.com")
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
}

func TestApply_CapacityFull(t *testing.T) {
	opps := &mockOppStore{}
	apps := &mockVolAppStore{}
	codes := &mockVerifier{}
	codes.On("Verify", mock.Anything, "mira@example.com", domain.PurposeVolunteerApplication, "123456").Return(nil)
	opps.On("Get", mock.Anything, "opp1").Return(openOpp(), nil)
	apps.On("FindByEmailAndOpportunity", mock.Anything, "mira@example.com", "opp1").Return(nil, domain.ErrNotFound)
	opps.On("IncrementApplications", mock.Anything, "opp1").Return(domain.ErrCapacityFull)

	svc := NewService(opps, apps, codes, &mockMailer{})
	app, err := svc.Apply(context.Background(), "opp1", applyReq())
	assert.Nil(t, app)
	assert.ErrorIs(t, err, domain.ErrCapacityFull)
	apps.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestApply_HappyPath(t *testing.T) {
	opps := &mockOppStore{}
	apps := &mockVolAppStore{}
	codes := &mockVerifier{}
	mailer := &mockMailer{}
	codes.On("Verify", mock.Anything, "mira@example.com", domain.PurposeVolunteerApplication, "123456").Return(nil)
	opps.On("Get", mock.Anything, "opp1").Return(openOpp(), nil)
	apps.On("FindByEmailAndOpportunity", mock.Anything, "mira@example.com", "opp1").Return(nil, domain.ErrNotFound)
	opps.On("IncrementApplications", mock.Anything, "opp1").Return(nil)
	apps.On("Put", mock.Anything, mock.AnythingOfType("*domain.VolunteerApplication")).Return(nil)
	mailer.On("Send", "mira@example.com", email.TemplateVolunteerReceived, mock.Anything).Return(nil)

	svc := NewService(opps, apps, codes, mailer)
	app, err := svc.Apply(context.Background(), "opp1", applyReq())

	require.NoError(t, err)
	assert.Equal(t, domain.VolunteerPending, app.Status)
	assert.Equal(t, "opp1", app.OpportunityID)
	mailer.AssertExpectations(t)
}

func TestApply_PutFailureReleasesSlot(t *testing.T) {
	opps := &mockOppStore{}
	apps := &mockVolAppStore{}
	codes := &mockVerifier{}
	codes.On("Verify", mock.Anything, "mira@example.com", domain.PurposeVolunteerApplication, "123456").Return(nil)
	opps.On("Get", mock.Anything, "opp1").Return(openOpp(), nil)
	apps.On("FindByEmailAndOpportunity", mock.Anything, "mira@example.com", "opp1").Return(nil, domain.ErrNotFound)
	opps.On("IncrementApplications", mock.Anything, "opp1").Return(nil)
	apps.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))
	opps.On("DecrementApplications", mock.Anything, "opp1").Return(nil)

	svc := NewService(opps, apps, codes, &mockMailer{})
	app, err := svc.Apply(context.Background(), "opp1", applyReq())

	assert.Nil(t, app)
	require.Error(t, err)
	opps.AssertCalled(t, "DecrementApplications", mock.Anything, "opp1")
}

func TestApply_DuplicateLookupFailureSurfaces(t *testing.T) {
	opps := &mockOppStore{}
	apps := &mockVolAppStore{}
	codes := &mockVerifier{}
	codes.On("Verify", mock.Anything, "mira@example.com", domain.PurposeVolunteerApplication, "123456").Return(nil)
	opps.On("Get", mock.Anything, "opp1").Return(openOpp(), nil)
	apps.On("FindByEmailAndOpportunity", mock.Anything, "mira@example.com", "opp1").
		Return(nil, errors.New("throttled"))

	svc := NewService(opps, apps, codes, &mockMailer{})
	app, err := svc.Apply(context.Background(), "opp1", applyReq())

	assert.Nil(t, app)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateEntry)
	opps.AssertNotCalled(t, "IncrementApplications", mock.Anything, mock.Anything)
	apps.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestUpdateApplicationStatus_RejectReleasesSlot(t *testing.T) {
	opps := &mockOppStore{}
	apps := &mockVolAppStore{}
	apps.On("Get", mock.Anything, "app1").Return(&domain.VolunteerApplication{
		ApplicationID: "app1", OpportunityID: "opp1", Status: domain.VolunteerPending,
	}, nil)
	apps.On("Update", mock.Anything, "app1", mock.Anything).Return(nil)
	opps.On("DecrementApplications", mock.Anything, "opp1").Return(nil)

	svc := NewService(opps, apps, &mockVerifier{}, &mockMailer{})
	err := svc.UpdateApplicationStatus(context.Background(), "app1", domain.VolunteerRejected)

	require.NoError(t, err)
	opps.AssertCalled(t, "DecrementApplications", mock.Anything, "opp1")
}

func TestUpdateApplicationStatus_ReactivatingRejectedReclaimsSlot(t *testing.T) {
	opps := &mockOppStore{}
	apps := &mockVolAppStore{}
	apps.On("Get", mock.Anything, "app1").Return(&domain.VolunteerApplication{
		ApplicationID: "app1", OpportunityID: "opp1", Status: domain.VolunteerRejected,
	}, nil)
	opps.On("IncrementApplications", mock.Anything, "opp1").Return(nil)
	apps.On("Update", mock.Anything, "app1", mock.Anything).Return(nil)

	svc := NewService(opps, apps, &mockVerifier{}, &mockMailer{})
	err := svc.UpdateApplicationStatus(context.Background(), "app1", domain.VolunteerApproved)

	require.NoError(t, err)
	opps.AssertCalled(t, "IncrementApplications", mock.Anything, "opp1")
}

func TestUpdateApplicationStatus_ReactivatingIntoFullOpportunity(t *testing.T) {
	opps := &mockOppStore{}
	apps := &mockVolAppStore{}
	apps.On("Get", mock.Anything, "app1").Return(&domain.VolunteerApplication{
		ApplicationID: "app1", OpportunityID: "opp1", Status: domain.VolunteerRejected,
	}, nil)
	opps.On("IncrementApplications", mock.Anything, "opp1").Return(domain.ErrCapacityFull)

	svc := NewService(opps, apps, &mockVerifier{}, &mockMailer{})
	err := svc.UpdateApplicationStatus(context.Background(), "app1", domain.VolunteerApproved)

	assert.ErrorIs(t, err, domain.ErrCapacityFull)
	apps.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateApplicationStatus_SameStatusIsNoOp(t *testing.T) {
	opps := &mockOppStore{}
	apps := &mockVolAppStore{}
	apps.On("Get", mock.Anything, "app1").Return(&domain.VolunteerApplication{
		ApplicationID: "app1", OpportunityID: "opp1", Status: domain.VolunteerRejected,
	}, nil)

	svc := NewService(opps, apps, &mockVerifier{}, &mockMailer{})
	err := svc.UpdateApplicationStatus(context.Background(), "app1", domain.VolunteerRejected)

	require.NoError(t, err)
	apps.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	opps.AssertNotCalled(t, "DecrementApplications", mock.Anything, mock.Anything)
}

func TestUpdateApplicationStatus_Invalid(t *testing.T) {
	svc := NewService(&mockOppStore{}, &mockVolAppStore{}, &mockVerifier{}, &mockMailer{})
	err := svc.UpdateApplicationStatus(context.Background(), "app1", "maybe")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreateOpportunity_DefaultsOpen(t *testing.T) {
	opps := &mockOppStore{}
	opps.On("Put", mock.Anything, mock.AnythingOfType("*domain.VolunteerOpportunity")).Return(nil)

	svc := NewService(opps, &mockVolAppStore{}, &mockVerifier{}, &mockMailer{})
	o, err := svc.CreateOpportunity(context.Background(), &domain.OpportunityInput{Title: "Garden Care"})
	require.NoError(t, err)
	assert.Equal(t, domain.OpportunityOpen, o.Status)
	assert.NotEmpty(t, o.OpportunityID)
}
