package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/infrastructure/google"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockCheckers struct{ mock.Mock }

func (m *mockCheckers) GetByUsername(ctx context.Context, username string) (*domain.FineChecker, error) {
	args := m.Called(ctx, username)
	if fc, _ := args.Get(0).(*domain.FineChecker); fc != nil {
		return fc, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOfficers struct{ mock.Mock }

func (m *mockOfficers) GetByUsername(ctx context.Context, username string) (*domain.MCOfficer, error) {
	args := m.Called(ctx, username)
	if o, _ := args.Get(0).(*domain.MCOfficer); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOwners struct{ mock.Mock }

func (m *mockOwners) GetByEmail(ctx context.Context, email string) (*domain.VehicleOwner, error) {
	args := m.Called(ctx, email)
	if vo, _ := args.Get(0).(*domain.VehicleOwner); vo != nil {
		return vo, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(userID, role, councilID string) (string, error) {
	args := m.Called(userID, role, councilID)
	return args.String(0), args.Error(1)
}

type mockGoogle struct{ mock.Mock }

func (m *mockGoogle) Verify(ctx context.Context, token string) (*google.Payload, error) {
	args := m.Called(ctx, token)
	if p, _ := args.Get(0).(*google.Payload); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

func hash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

type mocks struct {
	checkers *mockCheckers
	officers *mockOfficers
	owners   *mockOwners
	signer   *mockSigner
	google   *mockGoogle
}

func newSvc(t *testing.T) (Service, mocks) {
	m := mocks{&mockCheckers{}, &mockOfficers{}, &mockOwners{}, &mockSigner{}, &mockGoogle{}}
	svc := NewService(ServiceDeps{
		FineCheckers:      m.checkers,
		Officers:          m.officers,
		VehicleOwners:     m.owners,
		Signer:            m.signer,
		Google:            m.google,
		AdminUsername:     "admin",
		AdminPasswordHash: hash(t, "admin-pass"),
	})
	return svc, m
}

// --- Login ---

func TestLogin_Admin_Success(t *testing.T) {
	svc, m := newSvc(t)
	m.signer.On("Sign", "admin", domain.RoleAdmin, "").Return("tok", nil)

	res, err := svc.Login(context.Background(), domain.LoginRequest{Role: domain.RoleAdmin, Username: "admin", Password: "admin-pass"})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, domain.RoleAdmin, res.Role)
	assert.Nil(t, res.Profile)
}

func TestLogin_Admin_WrongPassword(t *testing.T) {
	svc, m := newSvc(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Role: domain.RoleAdmin, Username: "admin", Password: "nope"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	m.signer.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_Admin_DisabledWithoutHash(t *testing.T) {
	svc := NewService(ServiceDeps{AdminUsername: "admin", Signer: &mockSigner{}})

	_, err := svc.Login(context.Background(), domain.LoginRequest{Role: domain.RoleAdmin, Username: "admin", Password: ""})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestLogin_FineChecker_Success(t *testing.T) {
	svc, m := newSvc(t)
	fc := &domain.FineChecker{CheckerID: "FC_1", Username: "nimal", CouncilID: "CMC", PasswordHash: hash(t, "pw123456")}
	m.checkers.On("GetByUsername", mock.Anything, "nimal").Return(fc, nil)
	m.signer.On("Sign", "FC_1", domain.RoleFineChecker, "CMC").Return("tok", nil)

	res, err := svc.Login(context.Background(), domain.LoginRequest{Role: domain.RoleFineChecker, Username: "nimal", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, "FC_1", res.UserID)
	assert.Equal(t, "CMC", res.CouncilID)
	assert.Equal(t, fc, res.Profile)
}

func TestLogin_OfficerUsernameIsTrimmed(t *testing.T) {
	svc, m := newSvc(t)
	o := &domain.MCOfficer{OfficerID: "MCO_1", Username: "sunil", CouncilID: "KMC", PasswordHash: hash(t, "pw123456")}
	m.officers.On("GetByUsername", mock.Anything, "sunil").Return(o, nil)
	m.signer.On("Sign", "MCO_1", domain.RoleMCOfficer, "KMC").Return("tok", nil)

	res, err := svc.Login(context.Background(), domain.LoginRequest{Role: domain.RoleMCOfficer, Username: " sunil \t", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, "MCO_1", res.UserID)
	m.officers.AssertExpectations(t)
}

func TestLogin_UnknownUser_IsInvalidCredentials(t *testing.T) {
	svc, m := newSvc(t)
	m.officers.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Role: domain.RoleMCOfficer, Username: "ghost", Password: "x"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestLogin_StoreFailure_Propagates(t *testing.T) {
	svc, m := newSvc(t)
	m.officers.On("GetByUsername", mock.Anything, "sunil").Return(nil, errors.New("timeout"))

	_, err := svc.Login(context.Background(), domain.LoginRequest{Role: domain.RoleMCOfficer, Username: "sunil", Password: "x"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_UnsupportedRole(t *testing.T) {
	svc, _ := newSvc(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Role: domain.RoleVehicleOwner, Username: "a", Password: "b"})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- GoogleLogin ---

func TestGoogleLogin_Success(t *testing.T) {
	svc, m := newSvc(t)
	m.google.On("Verify", mock.Anything, "gtok").Return(&google.Payload{Sub: "1", Email: "a@b.lk", EmailVerified: true}, nil)
	m.owners.On("GetByEmail", mock.Anything, "a@b.lk").Return(&domain.VehicleOwner{OwnerID: "VO_1"}, nil)
	m.signer.On("Sign", "VO_1", domain.RoleVehicleOwner, "").Return("tok", nil)

	res, err := svc.GoogleLogin(context.Background(), "gtok")
	require.NoError(t, err)
	assert.Equal(t, "VO_1", res.UserID)
	assert.Equal(t, domain.RoleVehicleOwner, res.Role)
}

func TestGoogleLogin_UnverifiedEmail(t *testing.T) {
	svc, m := newSvc(t)
	m.google.On("Verify", mock.Anything, "gtok").Return(&google.Payload{Sub: "1", Email: "a@b.lk"}, nil)

	_, err := svc.GoogleLogin(context.Background(), "gtok")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestGoogleLogin_NotRegistered(t *testing.T) {
	svc, m := newSvc(t)
	m.google.On("Verify", mock.Anything, "gtok").Return(&google.Payload{Sub: "1", Email: "a@b.lk", EmailVerified: true}, nil)
	m.owners.On("GetByEmail", mock.Anything, "a@b.lk").Return(nil, domain.ErrNotFound)

	_, err := svc.GoogleLogin(context.Background(), "gtok")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGoogleLogin_NotConfigured(t *testing.T) {
	svc := NewService(ServiceDeps{})

	_, err := svc.GoogleLogin(context.Background(), "gtok")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
