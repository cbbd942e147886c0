package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"codemingle/internal/auth"
	"codemingle/internal/dto"
	apperrors "codemingle/internal/errors"
	"codemingle/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) IncrementViews(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountActivity(ctx context.Context, id uint) (int64, int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdateRating(ctx context.Context, id uint, rating float64) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		req           dto.RegisterRequest
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name: "successful registration",
			req:  dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"},
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) { args.Get(1).(*model.User).ID = 1 }).
					Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:          "missing password",
			req:           dto.RegisterRequest{Username: "alice", Email: "alice@example.com"},
			setupMock:     func(*MockUserRepository, *MockTokenStore) {},
			expectedError: apperrors.ErrMissingRegistrationField,
		},
		{
			name:          "blank username",
			req:           dto.RegisterRequest{Username: "   ", Email: "alice@example.com", Password: "pw"},
			setupMock:     func(*MockUserRepository, *MockTokenStore) {},
			expectedError: apperrors.ErrMissingRegistrationField,
		},
		{
			name: "username taken",
			req:  dto.RegisterRequest{Username: "alice", Email: "new@example.com", Password: "pw"},
			setupMock: func(mRepo *MockUserRepository, _ *MockTokenStore) {
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 9, Username: "alice"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
		{
			name: "email taken",
			req:  dto.RegisterRequest{Username: "bob", Email: "alice@example.com", Password: "pw"},
			setupMock: func(mRepo *MockUserRepository, _ *MockTokenStore) {
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
				mRepo.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore)
			resp, err := service.Register(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "alice", resp.Username)
				assert.Equal(t, model.RoleUser, resp.Role)
				assert.NotEmpty(t, resp.Token)
				assert.NotEmpty(t, resp.RefreshToken)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	stored := &model.User{ID: 3, Username: "alice", Email: "alice@example.com", Role: model.RoleUser, PasswordHash: string(hashedPassword)}

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(3), mock.Anything).Return(nil)
			},
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, _ *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "nope",
			setupMock: func(mRepo *MockUserRepository, _ *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)
			resp, err := service.Login(context.Background(), dto.LoginRequest{Username: tt.username, Password: tt.password})

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateToken(resp.Token)
				require.NoError(t, err)
				assert.Equal(t, uint(3), claims.UserID)
				assert.Equal(t, "alice@example.com", resp.Email)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_DemoLogin(t *testing.T) {
	tests := []struct {
		name          string
		accountType   string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		wantUsername  string
		expectedError error
	}{
		{
			name:        "admin account",
			accountType: "admin",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "admin").Return(&model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), mock.Anything).Return(nil)
			},
			wantUsername: "admin",
		},
		{
			name:        "user account maps to demo",
			accountType: "USER",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "demo").Return(&model.User{ID: 2, Username: "demo", Role: model.RoleUser}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(2), mock.Anything).Return(nil)
			},
			wantUsername: "demo",
		},
		{
			name:          "unknown account type",
			accountType:   "guest",
			setupMock:     func(*MockUserRepository, *MockTokenStore) {},
			expectedError: apperrors.ErrInvalidDemoAccount,
		},
		{
			name:        "seed missing",
			accountType: "admin",
			setupMock: func(mRepo *MockUserRepository, _ *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "admin").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrDemoAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore)
			resp, err := service.DemoLogin(context.Background(), tt.accountType)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUsername, resp.Username)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_DemoLoginStorageFailureIsNotLeaked(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "admin").Return(nil, errors.New("connection reset by peer"))

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
	_, err := service.DemoLogin(context.Background(), "admin")

	require.Error(t, err)
	assert.Equal(t, "internal server error", apperrors.MapErrorToHTTP(err).Message)
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	oldID, oldToken, err := jwtService.GenerateRefreshToken(auth.Subject{UserID: 4, Username: "alice"})
	require.NoError(t, err)

	mockRepo := new(MockUserRepository)
	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("GetRefreshToken", mock.Anything, oldID).Return(uint(4), nil)
	mockRepo.On("FindByID", mock.Anything, uint(4)).Return(&model.User{ID: 4, Username: "alice", Role: model.RoleUser}, nil)
	mockTokenStore.On("DeleteRefreshToken", mock.Anything, oldID).Return(nil)
	mockTokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(4), auth.RefreshTokenExpiry).Return(nil)

	service := NewAuthService(mockRepo, jwtService, mockTokenStore)
	resp, err := service.Refresh(context.Background(), oldToken)

	require.NoError(t, err)
	assert.NotEqual(t, oldToken, resp.RefreshToken)
	mockRepo.AssertExpectations(t)
	mockTokenStore.AssertExpectations(t)
}

func TestAuthService_RefreshRejectsRevokedToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	id, token, err := jwtService.GenerateRefreshToken(auth.Subject{UserID: 4})
	require.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("GetRefreshToken", mock.Anything, id).Return(uint(0), auth.ErrRefreshTokenNotFound)

	service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
	_, err = service.Refresh(context.Background(), token)
	assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)

	_, err = service.Refresh(context.Background(), "garbage")
	assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	_, access, err := jwtService.GenerateAccessToken(auth.Subject{UserID: 4, Username: "alice"})
	require.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)

	_, err = service.Refresh(context.Background(), access)
	assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)
	mockTokenStore.AssertNotCalled(t, "GetRefreshToken", mock.Anything, mock.Anything)
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	sub := auth.Subject{UserID: 5, Username: "alice"}
	_, access, err := jwtService.GenerateAccessToken(sub)
	require.NoError(t, err)
	refreshID, refresh, err := jwtService.GenerateRefreshToken(sub)
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(access)
	require.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("DeleteRefreshToken", mock.Anything, refreshID).Return(nil)
	mockTokenStore.On("BlacklistAccessToken", mock.Anything, claims.ID, mock.AnythingOfType("time.Duration")).Return(nil)

	service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
	require.NoError(t, service.Logout(context.Background(), claims, refresh))
	mockTokenStore.AssertExpectations(t)
}
