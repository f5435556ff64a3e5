package usecase_test

import (
	"context"
	"errors"
	"testing"

	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/pkg/apperror"
	"ayurdiet-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*domain.AuthSession, error) {
	args := m.Called(ctx, email, password, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthSession), args.Error(1)
}
func (m *MockGateway) SignIn(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthSession), args.Error(1)
}
func (m *MockGateway) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

type MockPatientRepo struct {
	mock.Mock
}

func (m *MockPatientRepo) GetAssessment(ctx context.Context, userID string) (*domain.PatientAssessment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PatientAssessment), args.Error(1)
}
func (m *MockPatientRepo) SaveAssessment(ctx context.Context, a *domain.PatientAssessment) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockPatientRepo) ClearAssessment(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockDietitianRepo struct {
	mock.Mock
}

func (m *MockDietitianRepo) GetOnboardingStatus(ctx context.Context, userID string) (*domain.OnboardingStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OnboardingStatus), args.Error(1)
}
func (m *MockDietitianRepo) SaveOnboarding(ctx context.Context, userID string, clinic domain.ClinicDetails, patient domain.FirstPatient) error {
	return m.Called(ctx, userID, clinic, patient).Error(0)
}
func (m *MockDietitianRepo) ListPatients(ctx context.Context, userID string) ([]domain.RosterPatient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RosterPatient), args.Error(1)
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "want *apperror.AppError, got %v", err)
	return appErr.Code
}
